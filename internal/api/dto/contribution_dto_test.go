package dto

import (
	"Mythica/internal/pkg/util"
	"strings"
	"testing"
)

func TestRecordContributionOptionalPartitionFields(t *testing.T) {
	// 只有资产与类型是必填，分区与展示信息可以缺省
	req := &RecordContributionDTO{
		AssetID: "asset-1",
		Kind:    "minor_edit",
	}
	if err := util.ValidateDTO(req); err != nil {
		t.Errorf("bare contribution rejected: %v", err)
	}

	req.TopicDomain = "norse"
	req.AssetType = "deity"
	req.AssetName = "Odin"
	if err := util.ValidateDTO(req); err != nil {
		t.Errorf("enriched contribution rejected: %v", err)
	}
}

func TestRecordContributionFieldLimits(t *testing.T) {
	req := &RecordContributionDTO{
		AssetID:     "asset-1",
		Kind:        "minor_edit",
		TopicDomain: strings.Repeat("x", 33),
	}
	if err := util.ValidateDTO(req); err == nil {
		t.Error("over-long topic_domain accepted")
	}

	req.TopicDomain = ""
	req.AssetID = strings.Repeat("x", 65)
	if err := util.ValidateDTO(req); err == nil {
		t.Error("over-long asset_id accepted")
	}
}
