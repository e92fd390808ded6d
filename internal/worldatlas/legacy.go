package worldatlas

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidLegacyCard is returned for legacy records missing the
// required name or continent.
var ErrInvalidLegacyCard = errors.New("legacy card requires name and continent")

// LegacyItem tolerates the two historical encodings of a food/clothing
// entry: a bare string, or an object with name and image (or url).
type LegacyItem struct {
	Name  string
	Image string
}

func (i *LegacyItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Name = s
		return nil
	}

	var obj struct {
		Name  string `json:"name"`
		Image string `json:"image"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.Name = obj.Name
	i.Image = obj.Image
	if i.Image == "" {
		i.Image = obj.URL
	}
	return nil
}

// LegacyCard is the older record shape still supplied by external
// batches. Field names drifted over time (flag vs flagUrl); flat
// strings and {name,url} items both appear in the wild.
type LegacyCard struct {
	Name      string       `json:"name"`
	Continent string       `json:"continent"`
	Code      string       `json:"code"`
	Flag      string       `json:"flag"`
	FlagURL   string       `json:"flagUrl"`
	Holidays  []string     `json:"holidays"`
	Foods     []LegacyItem `json:"foods"`
	Clothes   []LegacyItem `json:"clothes"`
}

// Key is the dedup identity of a culture card: lowercase
// name|continent. Two records with the same name but different
// continents are distinct.
func Key(name, continent string) string {
	return strings.ToLower(name + "|" + continent)
}

// AdaptLegacy maps a legacy record into the canonical CultureCard
// shape. The country code defaults to the first two letters of the
// name, lowercased, when absent.
func AdaptLegacy(card LegacyCard) (CultureCard, error) {
	name := strings.TrimSpace(card.Name)
	if name == "" || card.Continent == "" {
		return CultureCard{}, ErrInvalidLegacyCard
	}

	code := card.Code
	if code == "" {
		runes := []rune(strings.ToLower(name))
		if len(runes) > 2 {
			runes = runes[:2]
		}
		code = string(runes)
	}

	flag := card.Flag
	if flag == "" {
		flag = card.FlagURL
	}

	holidays := card.Holidays
	if holidays == nil {
		holidays = []string{}
	}

	return CultureCard{
		Name:      name,
		Continent: card.Continent,
		Code:      code,
		Flag:      flag,
		Holidays:  holidays,
		Foods:     adaptItems(card.Foods),
		Clothes:   adaptItems(card.Clothes),
	}, nil
}

func adaptItems(items []LegacyItem) []CultureItem {
	out := make([]CultureItem, 0, len(items))
	for _, i := range items {
		out = append(out, CultureItem{Name: i.Name, Image: i.Image})
	}
	return out
}
