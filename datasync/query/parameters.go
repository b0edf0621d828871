package query

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Reserved key prefixes. Keys starting with these belong to the protocol and
// are set only through dedicated builder methods.
const (
	SystemPrefix   = "$"
	InternalPrefix = "__"
)

type Parameter struct {
	Key   string
	Value string
}

// Parameters keeps custom parameters in insertion order.
type Parameters []Parameter

func (p Parameters) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

func (p Parameters) Len() int {
	return len(p)
}

func (p Parameters) clone() Parameters {
	return slices.Clone(p)
}

// with returns a copy holding key=value. An existing key keeps its position.
func (p Parameters) with(key, value string) Parameters {
	result := p.clone()
	for i := range result {
		if result[i].Key == key {
			result[i].Value = value
			return result
		}
	}
	return append(result, Parameter{Key: key, Value: value})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateParameter(key, value string) error {
	switch {
	case isBlank(key):
		return invalid("parameter key", key, "must not be blank")
	case strings.HasPrefix(key, SystemPrefix), strings.HasPrefix(key, InternalPrefix):
		return invalid("parameter key", key, "prefix is reserved")
	case isBlank(value):
		return invalid("parameter value", value, "value of %q must not be blank", key)
	}
	return nil
}

func validateParameters(keys []string, parameters map[string]string) error {
	var result *multierror.Error
	for _, key := range keys {
		if err := validateParameter(key, parameters[key]); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
