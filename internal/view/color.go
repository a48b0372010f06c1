/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package view

import (
	"fmt"
	"unicode/utf16"
)

// Seed chosen by eyeballing hash-derived palettes for a few well-known
// album names until the colors looked distinct.
const colorSeed = "37mw5"

// StringColor deterministically assigns a color to text: same seed and
// text always give the same color.
func StringColor(seed, text string) string {
	hash := cyrb128(text + seed)
	r := (hash & 0xff0000) >> 16
	g := (hash & 0x00ff00) >> 8
	b := hash & 0x0000ff
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// cyrb128, ported from the common JS snippet. Iterates UTF-16 code units
// to keep hashes identical to the JS behavior.
func cyrb128(s string) uint32 {
	var h1, h2, h3, h4 uint32 = 1779033703, 3144134277, 1013904242, 2773480762
	for _, k := range utf16.Encode([]rune(s)) {
		h1 = h2 ^ ((h1 ^ uint32(k)) * 597399067)
		h2 = h3 ^ ((h2 ^ uint32(k)) * 2869860233)
		h3 = h4 ^ ((h3 ^ uint32(k)) * 951274213)
		h4 = h1 ^ ((h4 ^ uint32(k)) * 2716044179)
	}
	h1 = (h3 ^ (h1 >> 18)) * 597399067
	h2 = (h4 ^ (h2 >> 22)) * 2869860233
	h3 = (h1 ^ (h3 >> 17)) * 951274213
	h4 = (h2 ^ (h4 >> 19)) * 2716044179
	return h1 ^ h2 ^ h3 ^ h4
}
