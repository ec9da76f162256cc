package config

import "fmt"

func MustNonEmpty(value, envName string) error {
	if value == "" {
		return fmt.Errorf("missing required env %s", envName)
	}
	return nil
}
