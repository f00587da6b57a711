// Package table defines the host-shaped input table and its loaders.
//
// A [Table] is what a host hands the chart: named columns, each tagged with
// zero or more data roles, and rows of primitive cells. Three roles matter:
// [RoleSegment] (the angular key, e.g. month), [RoleLayer] (the radial key,
// e.g. region) and [RoleValue] (the numeric measure).
//
// The roles are resolved to column indices once with [ResolveRoles]:
//
//	rm, err := table.ResolveRoles(t.Columns)
//	if errors.Is(err, errors.ErrCodeMissingRole) {
//	    // nothing to draw
//	}
//	segment := t.Rows[0][rm.Segment]
//
// Loaders exist for CSV ([ReadCSV]), JSON ([ReadJSON]) and Parquet
// ([ReadParquet]); [Load] dispatches on the file extension. File formats
// without role metadata get their roles from [Bindings], which name the
// columns to use and default to the first three columns in order.
package table
