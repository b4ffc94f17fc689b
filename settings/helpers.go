package settings

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ordishs/gocore"
)

func getString(key, defaultValue string) string {
	value, found := gocore.Config().Get(key)
	if !found {
		return defaultValue
	}

	return value
}

func getInt(key string, defaultValue int) int {
	value, found := gocore.Config().GetInt(key)
	if !found {
		return defaultValue
	}

	return value
}

func getURL(key, defaultValue string) *url.URL {
	value, _, _ := gocore.Config().GetURL(key, defaultValue)

	return value
}

func getBool(key string, defaultValue bool) bool {
	return gocore.Config().GetBool(key, defaultValue)
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err, _ := gocore.Config().GetDuration(key, defaultValue)
	if err != nil {
		return defaultValue
	}

	return value
}

func getFloat64(key string, defaultValue float64) float64 {
	value, found := gocore.Config().Get(key)
	if !found {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return f
}

// getAlias returns the value of the legacy environment variable name when it is set.
// It is used as the default of the gocore key, so the key itself still wins.
func getAlias(envName, defaultValue string) string {
	if value, ok := os.LookupEnv(envName); ok && value != "" {
		return value
	}

	return defaultValue
}

func dump(s *Settings) string {
	var sb strings.Builder

	dumpStruct(&sb, "", reflect.ValueOf(*s))

	return sb.String()
}

func dumpStruct(sb *strings.Builder, prefix string, v reflect.Value) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		name := prefix + t.Field(i).Name
		field := v.Field(i)

		switch {
		case field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)):
			dumpStruct(sb, name+".", field)
		case name == "RPC.Password":
			fmt.Fprintf(sb, "%-32s %s\n", name, "********")
		case field.Kind() == reflect.Ptr && field.IsNil():
			fmt.Fprintf(sb, "%-32s %s\n", name, "<nil>")
		default:
			fmt.Fprintf(sb, "%-32s %v\n", name, field.Interface())
		}
	}
}
