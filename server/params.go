package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spektr-org/eventboard/registrants"
)

// Selection query parameters.
const (
	paramGroup     = "group"
	paramNullGroup = "null_group"
	paramAllGroups = "all_groups"
	paramType      = "type"
	paramNullType  = "null_type"
	paramAllTypes  = "all_types"
	paramPaidOnly  = "paid_only"
)

// ParseCriteria reads a selection from query parameters.
//
// Repeated group and type parameters select values; empty values are
// ignored. When neither type nor null_type is present the dataset's
// default type selection applies, so "?type=" selects no type at all.
func ParseCriteria(q url.Values, opts registrants.Options) (registrants.Criteria, error) {
	var c registrants.Criteria

	flags := map[string]*bool{
		paramNullGroup: &c.NullGroup,
		paramNullType:  &c.NullType,
		paramPaidOnly:  &c.PaidOnly,
	}
	for name, dst := range flags {
		v, err := boolParam(q, name)
		if err != nil {
			return c, err
		}
		*dst = v
	}
	allGroups, err := boolParam(q, paramAllGroups)
	if err != nil {
		return c, err
	}
	allTypes, err := boolParam(q, paramAllTypes)
	if err != nil {
		return c, err
	}

	c.Groups = nonEmpty(q[paramGroup])
	if allGroups {
		c = opts.AllGroups(c)
	}

	_, typeGiven := q[paramType]
	_, nullTypeGiven := q[paramNullType]
	switch {
	case allTypes || (!typeGiven && !nullTypeGiven):
		def := opts.DefaultCriteria()
		c.Types, c.NullType = def.Types, def.NullType
	default:
		c.Types = nonEmpty(q[paramType])
	}
	return c, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, NewAPIError(http.StatusBadRequest, "INVALID_PARAMETER",
			fmt.Sprintf("%s: %q is not a boolean", name, raw))
	}
	return v, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
