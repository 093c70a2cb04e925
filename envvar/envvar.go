// Package envvar contains helpers for reading typed values from the environment, used to override the engine
// configuration without touching the config file.
package envvar

import (
	"os"
	"strconv"
)

// GetString returns the string value of the environment variable 'varName', if the variable is unset it will return
// "", false.
func GetString(varName string) (string, bool) {
	return os.LookupEnv(varName)
}

// GetInt returns the int value of the environment variable 'varName', if the variable is unset or not an int it will
// return 0, false.
func GetInt(varName string) (int, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetUint64 returns the uint64 value of the environment variable 'varName', if the variable is unset or not an
// unsigned integer it will return 0, false.
func GetUint64(varName string) (uint64, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.ParseUint(env, 10, 64)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetBool returns the boolean value of the environment variable 'varName', if the variable is unset or not a boolean
// it will return false, false.
func GetBool(varName string) (bool, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return false, false
	}

	val, err := strconv.ParseBool(env)
	if err != nil {
		return false, false
	}

	return val, true
}
