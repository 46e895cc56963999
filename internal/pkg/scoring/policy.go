package scoring

import "errors"

// Kind 贡献类型
type Kind string

const (
	KindAssetCreated     Kind = "asset_created"
	KindTranslationAdded Kind = "translation_added"
	KindMajorEdit        Kind = "major_edit"
	KindImageAdded       Kind = "image_added"
	KindCitationAdded    Kind = "citation_added"
	KindMinorEdit        Kind = "minor_edit"
	KindTagAdded         Kind = "tag_added"
	KindComment          Kind = "comment"
)

// ErrUnknownKind 未登记的贡献类型，调用方必须整单拒绝
var ErrUnknownKind = errors.New("unknown contribution kind")

// weights 贡献类型 -> 分值。历史记录的 weight 在创建时冻结，
// 调整此表不影响已落库的记录。
var weights = map[Kind]int{
	KindAssetCreated:     50,
	KindTranslationAdded: 15,
	KindMajorEdit:        10,
	KindImageAdded:       8,
	KindCitationAdded:    5,
	KindMinorEdit:        3,
	KindTagAdded:         2,
	KindComment:          1,
}

// ResolveWeight 解析贡献类型对应的分值
func ResolveWeight(kind Kind) (int, error) {
	w, ok := weights[kind]
	if !ok {
		return 0, ErrUnknownKind
	}
	return w, nil
}

// AllKinds 返回所有登记的贡献类型
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(weights))
	for k := range weights {
		kinds = append(kinds, k)
	}
	return kinds
}
