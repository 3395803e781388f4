package models

import (
	"fmt"
	"strings"
)

// Framework identifies the PHP framework layout the analyzer indexes against
type Framework string

const (
	// FrameworkZF1 resolves classes like Model_Car_Carrier via prefix mappings
	FrameworkZF1 Framework = "zf1"

	// FrameworkCakePHP resolves App::uses / App::import references
	FrameworkCakePHP Framework = "cakephp"

	// FrameworkLaravel resolves namespaced App\ classes
	FrameworkLaravel Framework = "laravel"
)

// DefaultFramework is used when neither config nor flags name one
const DefaultFramework = FrameworkZF1

// IsValid checks if the framework is known
func (f Framework) IsValid() bool {
	switch f {
	case FrameworkZF1, FrameworkCakePHP, FrameworkLaravel:
		return true
	default:
		return false
	}
}

// String returns the string representation of Framework
func (f Framework) String() string {
	return string(f)
}

// ParseFramework parses a string into a Framework. Empty input yields the default.
func ParseFramework(s string) (Framework, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFramework, nil
	}
	fw := Framework(s)
	if !fw.IsValid() {
		return "", fmt.Errorf("invalid framework: %s (must be zf1, cakephp, or laravel)", s)
	}
	return fw, nil
}

// AllFrameworks returns the known frameworks in display order
func AllFrameworks() []Framework {
	return []Framework{FrameworkZF1, FrameworkCakePHP, FrameworkLaravel}
}
