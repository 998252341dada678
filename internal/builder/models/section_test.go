package models

import (
	"testing"

	"github.com/openhire/pagebuilder/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContentPicksVariantByType(t *testing.T) {
	raw := []byte(`{"tagline":"Join us","videoUrl":"https://v","text":"about"}`)

	hero, err := DecodeContent(SectionHero, raw)
	require.NoError(t, err)
	assert.Equal(t, HeroContent{Tagline: "Join us"}, hero, "hero keeps only its own field")

	video, err := DecodeContent(SectionCultureVideo, raw)
	require.NoError(t, err)
	assert.Equal(t, CultureVideoContent{VideoURL: "https://v"}, video)

	about, err := DecodeContent(SectionAbout, raw)
	require.NoError(t, err)
	assert.Equal(t, AboutContent{Text: "about"}, about)
}

func TestDecodeContentUnknownType(t *testing.T) {
	_, err := DecodeContent("carousel", []byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeContentEmptyPayload(t *testing.T) {
	content, err := DecodeContent(SectionBenefits, nil)
	require.NoError(t, err)
	assert.Equal(t, BenefitsContent{}, content)
}

func TestEncodeContentNilIsEmptyObject(t *testing.T) {
	raw, err := EncodeContent(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestMergeContentDropsForeignFields(t *testing.T) {
	merged := MergeContent(AboutContent{Text: "old"}, ContentPatch{
		Text:    utils.Ptr("new"),
		Tagline: utils.Ptr("not an about field"),
	})
	assert.Equal(t, AboutContent{Text: "new"}, merged)
}

func TestMergeContentBenefitsItems(t *testing.T) {
	items := []BenefitItem{{ID: "b1", Icon: "heart", Title: "Health"}}
	merged := MergeContent(BenefitsContent{}, ContentPatch{Items: &items})
	assert.Equal(t, BenefitsContent{Items: items}, merged)
}

func TestValidSectionType(t *testing.T) {
	for _, typ := range []SectionType{
		SectionHero, SectionAbout, SectionCultureVideo,
		SectionBenefits, SectionLifeAtCompany, SectionOpenJobs,
	} {
		assert.True(t, ValidSectionType(typ))
	}
	assert.False(t, ValidSectionType("footer"))
}
