package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/registrants"
)

// selectionFlags mirror the dashboard's selection controls.
type selectionFlags struct {
	groups    []string
	nullGroup bool
	allGroups bool
	types     []string
	nullType  bool
	paidOnly  bool
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&s.groups, "group", "g", nil, "chapter/club/group to include (repeatable; none = every group)")
	f.BoolVar(&s.nullGroup, "null-group", false, "include rows without a chapter/club/group")
	f.BoolVar(&s.allGroups, "all-groups", false, "select every chapter/club/group, blank included")
	f.StringArrayVarP(&s.types, "type", "t", nil, "event type to include (repeatable; default every type)")
	f.BoolVar(&s.nullType, "null-type", false, "include rows without an event type")
	f.BoolVar(&s.paidOnly, "paid-only", false, "only paid events")
}

// criteria resolves the flags against the dataset. Without --type or
// --null-type every event type is selected.
func (s *selectionFlags) criteria(ctx context.Context, cmd *cobra.Command, svc *dashboard.Service) (registrants.Criteria, error) {
	opts, err := svc.Options(ctx)
	if err != nil {
		return registrants.Criteria{}, err
	}

	c := registrants.Criteria{
		Groups:    append([]string(nil), s.groups...),
		NullGroup: s.nullGroup,
		PaidOnly:  s.paidOnly,
	}
	if s.allGroups {
		c = opts.AllGroups(c)
	}
	if cmd.Flags().Changed("type") || cmd.Flags().Changed("null-type") {
		c.Types = append([]string{}, s.types...)
		c.NullType = s.nullType
	} else {
		def := opts.DefaultCriteria()
		c.Types, c.NullType = def.Types, def.NullType
	}
	return c, nil
}
