package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreader/types"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	// 每个登记过的类型都必须有规则，优先级按声明顺序
	for _, et := range types.AllEntityTypes() {
		rules := reg.RulesFor(et)
		require.NotEmpty(t, rules, "type %s", et)
		for i, r := range rules {
			assert.Equal(t, et, r.Type)
			assert.Equal(t, i, r.Priority)
			assert.GreaterOrEqual(t, r.BaseConfidence, 0.0)
			assert.LessOrEqual(t, r.BaseConfidence, 1.0)
		}
	}

	assert.Equal(t, types.AllEntityTypes(), reg.AllTypes())
}

// 规则表有问题必须在构建时报错，而不是抽取时
func TestNewRegistryFailFast(t *testing.T) {
	base := func() map[types.EntityType][]ruleSpec {
		specs := make(map[types.EntityType][]ruleSpec, len(defaultRules))
		for k, v := range defaultRules {
			specs[k] = v
		}
		return specs
	}

	// 缺类型
	specs := base()
	delete(specs, types.ISIN)
	_, err := newRegistry(specs)
	assert.Error(t, err)

	// 置信度越界
	specs = base()
	specs[types.ISIN] = []ruleSpec{{expr: `X`, conf: 1.5}}
	_, err = newRegistry(specs)
	assert.Error(t, err)

	// 非法正则
	specs = base()
	specs[types.ISIN] = []ruleSpec{{expr: `([`, conf: 0.5}}
	_, err = newRegistry(specs)
	assert.Error(t, err)

	// 未登记的实体类型
	specs = base()
	specs[types.EntityType("Bogus")] = []ruleSpec{{expr: `X`, conf: 0.5}}
	_, err = newRegistry(specs)
	assert.Error(t, err)
}
