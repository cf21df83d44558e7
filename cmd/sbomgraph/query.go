package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JimFuller-RedHat/trustify/internal/engine"
	"github.com/JimFuller-RedHat/trustify/internal/query"
)

var (
	queryScope      string
	queryID         string
	queryName       string
	queryPURL       string
	queryCPE        string
	queryExpr       string
	queryAncestors  uint
	queryDescendants uint
	queryOffset     uint
	queryLimit      uint
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve ancestor/descendant trees for matching components",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := componentReference()
		if err != nil {
			return err
		}

		var q query.GraphQuery
		switch {
		case ref != nil:
			q = query.Component(*ref)
		case queryExpr != "":
			expr, err := query.Parse(queryExpr)
			if err != nil {
				return err
			}
			q = query.Query(expr)
		default:
			return fmt.Errorf("sbomgraph: query: one of --id/--name/--purl/--cpe/--expr is required")
		}

		opts := query.NewOptions(query.WithAncestors(queryAncestors), query.WithDescendants(queryDescendants))
		page := engine.Paginated{Offset: queryOffset, Limit: queryLimit}

		var results engine.PaginatedResults[*jsonResult]
		if queryScope != "" {
			res, err := eng.RetrieveSingle(cmd.Context(), queryScope, q, opts, page)
			if err != nil {
				return err
			}
			results = toJSONResults(res)
		} else {
			res, err := eng.Retrieve(cmd.Context(), q, opts, page)
			if err != nil {
				return err
			}
			results = toJSONResults(res)
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func componentReference() (*query.ComponentReference, error) {
	set := 0
	var ref query.ComponentReference
	if queryID != "" {
		ref = query.ByID(queryID)
		set++
	}
	if queryName != "" {
		ref = query.ByName(queryName)
		set++
	}
	if queryPURL != "" {
		ref = query.ByPURL(queryPURL)
		set++
	}
	if queryCPE != "" {
		ref = query.ByCPE(queryCPE)
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("sbomgraph: query: only one of --id/--name/--purl/--cpe may be set")
	}
	if set == 0 {
		return nil, nil
	}
	return &ref, nil
}

func init() {
	queryCmd.Flags().StringVar(&queryScope, "sbom", "", "restrict the query to a single sbom_id")
	queryCmd.Flags().StringVar(&queryID, "id", "", "match a component by exact node_id")
	queryCmd.Flags().StringVar(&queryName, "name", "", "match a component by exact name")
	queryCmd.Flags().StringVar(&queryPURL, "purl", "", "match a component by purl substring")
	queryCmd.Flags().StringVar(&queryCPE, "cpe", "", "match a component by cpe substring")
	queryCmd.Flags().StringVar(&queryExpr, "expr", "", "match components by a field=value&field~value expression")
	queryCmd.Flags().UintVar(&queryAncestors, "ancestors", 0, "ancestor hops to collect")
	queryCmd.Flags().UintVar(&queryDescendants, "descendants", 0, "descendant hops to collect")
	queryCmd.Flags().UintVar(&queryOffset, "offset", 0, "result page offset")
	queryCmd.Flags().UintVar(&queryLimit, "limit", 0, "result page limit (0 = all)")
}
