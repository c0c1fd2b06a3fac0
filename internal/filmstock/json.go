// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package filmstock

import (
	"encoding/json"
	"fmt"

	"github.com/mlnoga/filmr/internal/filmrerr"
)

// MarshalJSON renders FilmType as its string name, not its ordinal.
func (t FilmType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses FilmType from its string name.
func (t *FilmType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ColorNegative":
		*t = ColorNegative
	case "ColorSlide":
		*t = ColorSlide
	case "BwNegative":
		*t = BwNegative
	default:
		return fmt.Errorf("%w: unknown film_type %q", filmrerr.ErrInvalidPreset, s)
	}
	return nil
}

// stockAlias has the same fields as Stock but is a distinct type with no
// methods of its own, so encoding/json handles it with the default struct
// codec; FilmType values inside it still go through FilmType's
// MarshalJSON/UnmarshalJSON above. No field defaults are applied.
type stockAlias Stock

// collection is the `{"stocks": {name: stock}}` shape accepted by the
// preset loader alongside a bare single-stock object.
type collection struct {
	Stocks map[string]json.RawMessage `json:"stocks"`
}

// DecodeLibrary accepts either a single-stock JSON object or a
// `{"stocks": {name -> stock}}` collection and returns a name-keyed map of
// stocks. Empty `name` fields are filled from the collection's key.
func DecodeLibrary(data []byte) (map[string]Stock, error) {
	var c collection
	if err := json.Unmarshal(data, &c); err == nil && c.Stocks != nil {
		out := make(map[string]Stock, len(c.Stocks))
		for key, raw := range c.Stocks {
			var s Stock
			if err := json.Unmarshal(raw, (*stockAlias)(&s)); err != nil {
				return nil, fmt.Errorf("%w: stock %q: %v", filmrerr.ErrInvalidPreset, key, err)
			}
			if s.Name == "" {
				s.Name = key
			}
			out[s.Name] = s
		}
		return out, nil
	}

	var s Stock
	if err := json.Unmarshal(data, (*stockAlias)(&s)); err != nil {
		return nil, fmt.Errorf("%w: %v", filmrerr.ErrInvalidPreset, err)
	}
	return map[string]Stock{s.Name: s}, nil
}

// EncodeSingle renders a single stock as a bare JSON object.
func EncodeSingle(s Stock) ([]byte, error) {
	return json.MarshalIndent((stockAlias)(s), "", "  ")
}

// EncodeLibrary renders a name-keyed map as the `{"stocks": {...}}` shape.
func EncodeLibrary(stocks map[string]Stock) ([]byte, error) {
	aliased := make(map[string]stockAlias, len(stocks))
	for name, s := range stocks {
		aliased[name] = stockAlias(s)
	}
	return json.MarshalIndent(struct {
		Stocks map[string]stockAlias `json:"stocks"`
	}{Stocks: aliased}, "", "  ")
}
