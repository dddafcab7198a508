package extraction

import (
	"sort"

	"docreader/types"
)

// 结果装配：只做去重和排序，不碰归一化和匹配逻辑

type dedupeKey struct {
	t     types.EntityType
	raw   string
	start int
	end   int
}

// Assemble 去掉 (type, raw_value, char_start, char_end) 完全相同的重复实体，
// 然后按 char_start 升序稳定排序，平局按类型名，保证同输入产出同序
func Assemble(entities []types.Entity) []types.Entity {
	seen := make(map[dedupeKey]struct{}, len(entities))
	out := make([]types.Entity, 0, len(entities))

	for _, e := range entities {
		k := dedupeKey{e.Entity, e.RawValue, e.CharStart, e.CharEnd}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CharStart != out[j].CharStart {
			return out[i].CharStart < out[j].CharStart
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}
