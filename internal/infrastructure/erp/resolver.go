package erp

import (
	"go.uber.org/zap"
)

// Resolution is the outcome of a logical column lookup. Absent means the
// concept does not exist in the tenant's deployment; callers omit the field
// rather than guessing a name.
type Resolution struct {
	Column string
	Absent bool
}

// ColumnResolver translates logical field keys into the physical column
// names of a tenant's schema variant. It is a pure lookup over static
// configuration; an unknown schema identifier degrades to the default
// mapping with a warning instead of failing the tenant.
type ColumnResolver struct {
	logger *zap.Logger
}

// NewColumnResolver creates a resolver
func NewColumnResolver(logger *zap.Logger) *ColumnResolver {
	return &ColumnResolver{logger: logger.Named("column-resolver")}
}

// Resolve looks up the physical column for one logical field key
func (r *ColumnResolver) Resolve(schema, table, key string) Resolution {
	schema = r.normalizeSchema(schema)

	mapping, ok := columnMappings[schema][table]
	if !ok {
		r.logger.Warn("unmapped logical table, treating fields as absent",
			zap.String("schema", schema),
			zap.String("table", table),
		)
		return Resolution{Absent: true}
	}

	column, ok := mapping[key]
	if !ok {
		r.logger.Warn("unmapped logical field key, treating as absent",
			zap.String("schema", schema),
			zap.String("table", table),
			zap.String("key", key),
		)
		return Resolution{Absent: true}
	}
	if column == Absent {
		return Resolution{Absent: true}
	}
	return Resolution{Column: column}
}

// ResolveMany resolves a set of logical field keys in one call. The result
// map's key set always equals the requested key set.
func (r *ColumnResolver) ResolveMany(schema, table string, keys ...string) map[string]Resolution {
	result := make(map[string]Resolution, len(keys))
	for _, key := range keys {
		result[key] = r.Resolve(schema, table, key)
	}
	return result
}

// TableName returns the physical table backing a logical table
func (r *ColumnResolver) TableName(schema, table string) string {
	schema = r.normalizeSchema(schema)
	return tableNames[schema][table]
}

func (r *ColumnResolver) normalizeSchema(schema string) string {
	if _, ok := columnMappings[schema]; ok {
		return schema
	}
	r.logger.Warn("unknown schema identifier, falling back to default mapping",
		zap.String("schema", schema),
		zap.String("default", DefaultSchemaID),
	)
	return DefaultSchemaID
}
