package extraction

import (
	"math"
	"strings"

	"docreader/logic/extraction/normalize"
	"docreader/types"
)

// 置信度策略：规则自带的 base confidence 反映模式特异性；
// 归一化通过了强结构校验可以抬一点，失败则乘惩罚系数回退。
// 最终值永远 clamp 到 [0,1]。

const normalizeFailPenalty = 0.6

// 强校验通过后的下限
const (
	confISINShape  = 0.98
	confAmount     = 0.92
	confDate       = 0.90
	confKnownParty = 0.93
)

// partyTokens 常见机构关键词，命中说明对手方模式抓到的是真机构名
var partyTokens = []string{"BANK", "CAPITAL", "SECURITIES"}

func adjustConfidence(m RawMatch, cat types.Category, ok bool) float64 {
	conf := m.Rule.BaseConfidence
	if !ok {
		return clamp01(conf * normalizeFailPenalty)
	}

	switch {
	case m.Type == types.ISIN && normalize.ValidISINShape(strings.TrimSpace(m.Raw)):
		conf = math.Max(conf, confISINShape)
	case cat == types.CategoryAmount:
		conf = math.Max(conf, confAmount)
	case cat == types.CategoryDate:
		conf = math.Max(conf, confDate)
	case m.Type == types.Counterparty || m.Type == types.PartyA || m.Type == types.PartyB:
		upper := strings.ToUpper(m.Raw)
		for _, tok := range partyTokens {
			if strings.Contains(upper, tok) {
				conf = math.Max(conf, confKnownParty)
				break
			}
		}
	}
	return clamp01(conf)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
