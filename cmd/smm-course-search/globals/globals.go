package globals

import (
	"context"

	"smm-course-search/internal/components/telemetry"
	"smm-course-search/internal/query"
	"smm-course-search/internal/search"
)

type key struct{}

type Value struct {
	Searcher   search.Searcher
	Translator query.Translator
	Tel        telemetry.API
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
