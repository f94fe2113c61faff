/*
Package conf is a helper for the sweep harness configuration for both command
line interface and environment variables.
It gives ability to register arguments which will be fetched from
CLI input OR environment variable.

When `ParseEnv` is executed, only the environment arguments are parsed and
ready to be used in flag variables. It can be run multiple times.

When `ParseFlags` is executed, the arguments from both CLI and Env are parsed.
In case of --help option it prints help for every registered flag.
*/
package conf
