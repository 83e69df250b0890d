package slice

import "github.com/dalemusser/learnadmin/internal/app/api/apicache"

// ProvideList tags a list result with the collection tag and one tag per row.
func ProvideList[T any](typ string, id func(T) string) func(any) []apicache.Tag {
	return func(result any) []apicache.Tag {
		rows, _ := result.([]T)
		tags := make([]apicache.Tag, 0, len(rows)+1)
		tags = append(tags, apicache.List(typ))
		for _, row := range rows {
			if v := id(row); v != "" {
				tags = append(tags, apicache.Item(typ, v))
			}
		}
		return tags
	}
}

// ProvideItem tags a detail result with its record tag.
func ProvideItem[T any](typ string, id func(T) string) func(any) []apicache.Tag {
	return func(result any) []apicache.Tag {
		row, ok := result.(T)
		if !ok || id(row) == "" {
			return nil
		}
		return []apicache.Tag{apicache.Item(typ, id(row))}
	}
}

// ProvideStatic tags any result with fixed tags.
func ProvideStatic(tags ...apicache.Tag) func(any) []apicache.Tag {
	return func(any) []apicache.Tag { return tags }
}

// InvalidateList makes the collection of typ stale, plus extra.
func InvalidateList(typ string, extra ...apicache.Tag) func(Call) []apicache.Tag {
	return func(Call) []apicache.Tag {
		return append([]apicache.Tag{apicache.List(typ)}, extra...)
	}
}

// InvalidateItem makes the record named by the {id} param and the collection
// of typ stale, plus extra.
func InvalidateItem(typ string, extra ...apicache.Tag) func(Call) []apicache.Tag {
	return func(c Call) []apicache.Tag {
		tags := []apicache.Tag{apicache.List(typ)}
		if id := c.Params["id"]; id != "" {
			tags = append(tags, apicache.Item(typ, id))
		}
		return append(tags, extra...)
	}
}
