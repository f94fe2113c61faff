package conf

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// envPrefix is prepended to every flag name to form the corresponding
// environment variable, e.g. "output_file" becomes "SWEEP_OUTPUT_FILE".
const envPrefix = "SWEEP"

// EnvironmentPrefix marks the environment variables owned by this
// application.
const EnvironmentPrefix = envPrefix + "_"

var (
	app = kingpin.New("sweep", "No help available")

	// Default flags and values.
	logLevelFlag = NewStringFlag(
		"log",
		"Log level for the sweep harness: debug, info, warn, error, fatal, panic",
		"error",
	)
	isEnvParsed = false
)

// SetHelpPath sets the help message for CLI rendering the file from given file.
// We need to expose this function so other packages can set the app help.
func SetHelpPath(readmePath string) {
	readmeData, err := ioutil.ReadFile(readmePath)
	if err != nil {
		panic(errors.Wrapf(err, "reading %s failed", readmePath))
	}
	app.Help = string(readmeData)
}

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured logLevel from input option or env variable.
// If it cannot parse the log level, it returns default value.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// ParseFlags parse both the command line flags of the process and
// environment variables.
func ParseFlags() error {
	_, err := app.Parse(os.Args[1:])
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrapf(err, "could not parse command line flags")
}

// ParseEnv parse the environment for arguments.
func ParseEnv() error {
	_, err := app.Parse([]string{})
	if err == nil {
		isEnvParsed = true
		return nil
	}

	return errors.Wrapf(err, "could not parse environment flags")
}

// getFlagsDefinition returns current value, default, name and description for
// every registered flag.
// Note: order is important because it logically groups flags.
func getFlagsDefinition() (flags []struct{ Name, Value, Default, Help string }) {
	for _, flag := range app.Model().Flags {

		// Skip kingpin builtin flags that aren't compatible with environment based configuration.
		if strings.Contains(flag.Name, "-") {
			continue
		}

		// Returned values are basic types (string, int) or time.Duration and then serialized to string.
		var value interface{}

		// First handle the internal flag implementation of this package.
		if slv, ok := flag.Value.(*StringListValue); ok {
			value = slv.String()
		} else {
			// Use reflection to extract value hidden in non exported kingpin implementation.
			reflectValue := reflect.ValueOf(flag.Value)

			// flag.Value is a pointer to something like kingpin.boolValue or
			// kingpin.stringValue, so extract the value struct itself.
			elem := reflectValue.Elem()

			switch elem.Kind() {

			case reflect.Int64, reflect.Int:
				// Special case for the duration flag which kingpin stores as int64.
				value = time.Duration(elem.Int())

			case reflect.Struct:

				// Get field that is used in kingpin to store value (pointer)
				// and dereference it.
				field := elem.FieldByName("v")
				valueInField := field.Elem()

				switch valueInField.Kind() {

				case reflect.String:
					value = valueInField.String()

				case reflect.Bool:
					value = valueInField.Bool()

				case reflect.Int64, reflect.Int:
					value = valueInField.Int()

				default:
					value = fmt.Sprintf("unhandled flag %s kind=%s", flag.Name, elem.Kind())
				}
			}
		}

		flags = append(flags, struct{ Name, Value, Default, Help string }{
			Name:    flag.Name,
			Help:    flag.Help,
			Default: strings.Join(flag.Default, ","),
			Value:   fmt.Sprintf("%v", value),
		})
	}

	return flags
}

// DumpConfig dumps environment based configuration with current values of flags.
func DumpConfig() string {
	return DumpConfigMap(nil)
}

// DumpConfigMap dumps environment based configuration with current values
// overwritten by given flagMap. Includes "allexport" directives for bash.
func DumpConfigMap(flagMap map[string]string) string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export are values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, fd := range getFlagsDefinition() {

		fmt.Fprintf(buffer, "\n# %s\n", fd.Help)
		if fd.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", fd.Default)
		}

		// Override current values with provided from flagMap.
		value := fd.Value
		if mapValue, ok := flagMap[fd.Name]; ok {
			value = mapValue
		}

		fmt.Fprintf(buffer, "%s_%s=%v\n", envPrefix, strings.ToUpper(fd.Name), value)
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for _, flag := range getFlagsDefinition() {
		flagsMap[flag.Name] = flag.Value
	}
	return flagsMap
}
