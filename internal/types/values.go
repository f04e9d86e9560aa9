// Package types holds small value types shared by the SIP packages.
package types

import (
	"maps"
	"slices"

	"github.com/peterpangl/sipxecs/internal/stringutils"
)

// Values maps a case-insensitive parameter name to its values in order of appearance.
// It is used to store URI and header parameters.
type Values map[string][]string

// Get returns the last value of the parameter and whether it is present.
func (vals Values) Get(key string) (string, bool) {
	v := vals[stringutils.LCase(key)]
	if len(v) == 0 {
		return "", false
	}
	return v[len(v)-1], true
}

// Set sets the key to value. It replaces any existing values.
func (vals Values) Set(key, value string) Values {
	vals[stringutils.LCase(key)] = []string{value}
	return vals
}

// Append adds value to the list of the key values.
func (vals Values) Append(key, value string) Values {
	key = stringutils.LCase(key)
	vals[key] = append(vals[key], value)
	return vals
}

// Del deletes the values associated with the key.
func (vals Values) Del(key string) Values {
	delete(vals, stringutils.LCase(key))
	return vals
}

// Has checks whether a given key is in the map.
func (vals Values) Has(key string) bool {
	_, ok := vals[stringutils.LCase(key)]
	return ok
}

// Keys returns parameter names in lexical order.
func (vals Values) Keys() []string {
	return slices.Sorted(maps.Keys(vals))
}

// Clone returns a deep copy of the map.
func (vals Values) Clone() Values {
	if vals == nil {
		return nil
	}
	vals2 := make(Values, len(vals))
	for k, vs := range vals {
		vals2[k] = slices.Clone(vs)
	}
	return vals2
}
