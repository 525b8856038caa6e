package catalog

import (
	"regexp"
	"strings"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

type rule struct {
	name string
	re   *regexp.Regexp
}

func mustRules(defs [][2]string) []rule {
	out := make([]rule, len(defs))
	for i, d := range defs {
		out[i] = rule{name: d[0], re: regexp.MustCompile(d[1])}
	}
	return out
}

// 제품명 키워드 → 성분 (순서 고정)
var ingredientRules = mustRules([][2]string{
	{"teatree", `티트리|tea\s?tree`},
	{"cica", `시카|병풀|센텔라|마데카|cica|centella`},
	{"heartleaf", `어성초|약모밀|heartleaf`},
	{"mugwort", `쑥|mugwort|artemisia`},
	{"hyaluronic", `히알루론|하이드라|hyaluronic`},
	{"ceramide", `세라마이드|ceramide`},
	{"panthenol", `판테놀|panthenol`},
	{"propolis", `프로폴리스|로얄젤리|propolis`},
	{"vitamin-c", `비타민|청귤|유자|vita`},
	{"niacinamide", `나이아신|niacin`},
	{"retinol", `레티놀|레티날|retinol|retinal`},
	{"collagen", `콜라겐|collagen`},
	{"bha", `바하|살리실산|\bbha\b|salicylic`},
	{"aha", `아하|글라이콜릭|\baha\b|glycolic`},
	{"azelaic", `아젤라익|azelaic`},
})

// 제품명 키워드 → 태그 (순서 고정)
var tagRules = mustRules([][2]string{
	{"soothing", `진정|수딩|쿨링|시카|티트리|어성초`},
	{"moisturizing", `보습|수분|물광|촉촉|히알루론`},
	{"barrier", `장벽|판테놀|세라마이드|재생`},
	{"brightening", `미백|톤업|브라이트닝|잡티|비타민|화이트닝`},
	{"anti-aging", `주름|탄력|안티에이징|리프팅|노화|레티놀`},
	{"acne-care", `트러블|여드름|아크네|티트리|블레미쉬`},
	{"pore-care", `모공|피지|블랙헤드`},
	{"sebum-care", `피지|개기름|산뜻|유분`},
	{"hydration", `수분|hydration`},
	{"firming", `탄력|firming`},
	{"sensitive-skin", `민감|저자극|순한|약산성`},
	{"oily-skin", `지성|개기름`},
	{"dry-skin", `건성|속건조|당김`},
	{"low-ph", `약산성|low\s?ph`},
	{"hypoallergenic", `저자극|hypoallergenic`},
	{"fragrance-free", `무향|fragrance\s?free`},
	{"vegan", `비건|vegan`},
})

// 제형 (앞에서부터 첫 매칭)
var textureRules = []struct {
	texture contracts.Texture
	re      *regexp.Regexp
}{
	{contracts.TextureBalm, regexp.MustCompile(`클렌징\s?밤|\bbalm\b`)},
	{contracts.TextureOil, regexp.MustCompile(`오일|\boil\b`)},
	{contracts.TextureGel, regexp.MustCompile(`젤|\bgel\b`)},
	{contracts.TextureLotion, regexp.MustCompile(`로션|에멀전|lotion|emulsion`)},
	{contracts.TextureCream, regexp.MustCompile(`크림|cream`)},
}

// tagFeatures 태그 → 개선 대상 feature
var tagFeatures = map[string]contracts.Feature{
	"moisturizing": contracts.FeatureMoisture,
	"hydration":    contracts.FeatureMoisture,
	"dry-skin":     contracts.FeatureMoisture,
	"sebum-care":   contracts.FeatureSebum,
	"oily-skin":    contracts.FeatureSebum,
	"acne-care":    contracts.FeatureAcne,
	"anti-aging":   contracts.FeatureWrinkles,
	"firming":      contracts.FeatureWrinkles,
	"pore-care":    contracts.FeaturePore,
	"soothing":     contracts.FeatureRedness,
	"barrier":      contracts.FeatureRedness,
	"brightening":  contracts.FeaturePigmentation,
}

var safeTags = map[string]bool{"sensitive-skin": true, "hypoallergenic": true, "low-ph": true}

// Annotation is what the tagger derives from a product title
type Annotation struct {
	Tags            []string
	Ingredients     []string
	TargetFeatures  []contracts.Feature
	Texture         contracts.Texture
	SensitivitySafe bool
	NightOnly       bool
}

// Tagger derives tags, ingredients and suitability from product titles
type Tagger struct{}

// NewTagger creates a keyword tagger
func NewTagger() *Tagger {
	return &Tagger{}
}

// Annotate analyses one title; output order follows the rule tables
func (t *Tagger) Annotate(title string, category contracts.Category) Annotation {
	text := strings.ToLower(title)
	var a Annotation

	for _, r := range ingredientRules {
		if r.re.MatchString(text) {
			a.Ingredients = append(a.Ingredients, r.name)
		}
	}
	for _, r := range tagRules {
		if r.re.MatchString(text) {
			a.Tags = append(a.Tags, r.name)
		}
	}
	if category == contracts.CategorySunscreen {
		a.Tags = append(a.Tags, "spf50")
	}

	for _, r := range textureRules {
		if r.re.MatchString(text) {
			a.Texture = r.texture
			break
		}
	}

	targets := make(map[contracts.Feature]bool)
	safe := false
	for _, tag := range a.Tags {
		if f, ok := tagFeatures[tag]; ok {
			targets[f] = true
		}
		if safeTags[tag] {
			safe = true
		}
	}
	for _, f := range contracts.Features {
		if targets[f] {
			a.TargetFeatures = append(a.TargetFeatures, f)
		}
	}

	// 강산(AHA/BHA)은 민감 표기와 무관하게 안전 제외, 레티노이드는 밤 전용
	for _, ing := range a.Ingredients {
		switch ing {
		case "aha", "bha":
			safe = false
		case "retinol":
			a.NightOnly = true
		}
	}
	a.SensitivitySafe = safe

	return a
}

// Apply fills the derived fields of p from its name, keeping explicit values
func (t *Tagger) Apply(p *contracts.Product) {
	a := t.Annotate(p.Name, p.Category)
	if len(p.Tags) == 0 {
		p.Tags = a.Tags
	}
	if len(p.Ingredients) == 0 {
		p.Ingredients = a.Ingredients
	}
	if len(p.TargetFeatures) == 0 {
		p.TargetFeatures = a.TargetFeatures
	}
	if p.Suitability.Texture == contracts.TextureAny {
		p.Suitability.Texture = a.Texture
	}
	p.Suitability.SensitivitySafe = p.Suitability.SensitivitySafe || a.SensitivitySafe
	p.Suitability.NightOnly = p.Suitability.NightOnly || a.NightOnly
}
