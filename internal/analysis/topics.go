package analysis

import (
	"strings"

	"douyinsight/internal/types"
)

// TopicCategory is one keyword-set category for multi-label tagging.
type TopicCategory struct {
	Name     string
	Keywords []string
}

// DefaultTopicCategories are the hot-topic keyword sets, carried over
// verbatim from the original tool.
var DefaultTopicCategories = []TopicCategory{
	{"质量问题", []string{"质量", "差", "坏", "问题", "故障", "退货", "换货"}},
	{"价格相关", []string{"价格", "贵", "便宜", "值", "不值", "实惠", "优惠"}},
	{"服务体验", []string{"服务", "态度", "客服", "售后", "快递", "物流", "送货"}},
	{"使用体验", []string{"好用", "难用", "体验", "操作", "方便", "实用", "手感"}},
	{"外观设计", []string{"外观", "设计", "漂亮", "好看", "丑", "时尚", "颜值"}},
	{"功能特性", []string{"功能", "特性", "性能", "速度", "效果", "强大", "智能"}},
}

// ContentTagCategories are the finer-grained content-tag keyword sets.
var ContentTagCategories = []TopicCategory{
	{"产品评价", []string{"质量", "做工", "好用", "实用", "推荐", "好看", "效果", "物超所值", "值得", "购买"}},
	{"价格讨论", []string{"价格", "贵", "便宜", "划算", "性价比", "优惠", "打折", "值得", "不值", "退款"}},
	{"功能咨询", []string{"怎么用", "使用", "功能", "操作", "如何", "教程", "说明书", "方法", "步骤"}},
	{"物流相关", []string{"发货", "快递", "物流", "送货", "收到", "包装", "到货", "破损", "完好"}},
	{"售后服务", []string{"售后", "退换", "保修", "客服", "维修", "退货", "换货", "联系", "解决"}},
	{"比较参考", []string{"对比", "差别", "区别", "比较", "选择", "推荐", "哪个好", "还是", "更好"}},
	{"创意灵感", []string{"创意", "灵感", "设计", "风格", "教程", "搭配", "点子", "技巧", "启发"}},
	{"情感表达", []string{"喜欢", "讨厌", "爱", "感动", "失望", "开心", "伤心", "期待", "惊喜", "难过"}},
	{"购买意向", []string{"想买", "想要", "准备", "下单", "入手", "购买", "剁手", "心动", "购物车"}},
	{"使用体验", []string{"体验", "感受", "使用感", "手感", "舒适度", "用着", "试用", "上手"}},
}

// LanguageStyleCategories group comments by expression habits for the
// user-portrait chart.
var LanguageStyleCategories = []TopicCategory{
	{"网络流行语", []string{"yyds", "绝绝子", "真的蛮", "蕉绿", "破防了", "笑死", "太真了", "奈斯", "无语子"}},
	{"学生用语", []string{"学校", "作业", "考试", "老师", "课程", "学习", "上课", "复习"}},
	{"职场用语", []string{"工作", "项目", "公司", "老板", "会议", "客户", "同事", "薪资"}},
	{"情感表达", []string{"喜欢", "爱", "感动", "哭了", "泪目", "心疼", "心动", "可爱"}},
	{"批判性表达", []string{"垃圾", "难看", "失望", "差评", "不行", "假", "水平", "浪费"}},
}

// TagTopics returns the names of every category with at least one
// keyword appearing as a substring of the lowercased content. Categories
// match independently: zero, one or many labels per comment.
func TagTopics(content string, categories []TopicCategory) []string {
	lower := strings.ToLower(content)
	var matched []string
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, cat.Name)
				break
			}
		}
	}
	return matched
}

// CountTopics tallies category matches across the whole table,
// preserving category order.
func CountTopics(comments []*types.Comment, categories []TopicCategory) []LabelCount {
	counts := make([]LabelCount, len(categories))
	for i, cat := range categories {
		counts[i].Label = cat.Name
	}
	byName := make(map[string]int, len(categories))
	for i, cat := range categories {
		byName[cat.Name] = i
	}
	for _, c := range comments {
		for _, name := range TagTopics(c.Content, categories) {
			counts[byName[name]].Count++
		}
	}
	return counts
}

// LabelCount is one (label, count) pair of a distribution.
type LabelCount struct {
	Label string
	Count int
}
