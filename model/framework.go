// model/framework.go
package model

import (
	"fmt"
	"strings"

	soxlite_errors "github.com/soxlite/api/errors"
)

// Framework is a compliance regime with its own field vocabulary and rule set
type Framework string

const (
	FrameworkSOX      Framework = "sox"
	FrameworkESG      Framework = "esg"
	FrameworkSOC2     Framework = "soc2"
	FrameworkISO27001 Framework = "iso27001"
)

// DefaultFramework is used when the caller does not select one
const DefaultFramework = FrameworkSOX

// Frameworks lists every supported framework in display order
var Frameworks = []Framework{FrameworkSOX, FrameworkESG, FrameworkSOC2, FrameworkISO27001}

var displayNames = map[Framework]string{
	FrameworkSOX:      "SOX",
	FrameworkESG:      "ESG",
	FrameworkSOC2:     "SOC 2",
	FrameworkISO27001: "ISO 27001",
}

// ParseFramework resolves a selector token. An empty token selects DefaultFramework.
func ParseFramework(token string) (Framework, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return DefaultFramework, nil
	}
	for _, f := range Frameworks {
		if string(f) == token {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", soxlite_errors.ErrUnknownFramework, token)
}

// DisplayName returns the human readable framework name
func (f Framework) DisplayName() string {
	if name, ok := displayNames[f]; ok {
		return name
	}
	return strings.ToUpper(string(f))
}

func (f Framework) String() string {
	return string(f)
}
