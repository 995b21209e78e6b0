package wit

import (
	"encoding/json"
	"io"
)

// DecodeJSON decodes a [WIT] JSON document (the `wasm-tools component wit -j`
// wire format) from r into a [Resolve].
// Worlds, Interfaces, TypeDefs and Packages are sized to the document's
// "worlds", "interfaces", "types" and "packages" arrays; their entries are
// allocated zero-valued, and their fields are not decoded.
//
// [WIT]: https://github.com/WebAssembly/component-model/blob/main/design/mvp/WIT.md
func DecodeJSON(r io.Reader) (*Resolve, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	res := &Resolve{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (res *Resolve) UnmarshalJSON(data []byte) error {
	type arena[T any] struct {
		Items items[T] `json:"items"`
	}

	var proxy struct {
		Worlds     arena[World]     `json:"worlds"`
		Interfaces arena[Interface] `json:"interfaces"`
		Types      arena[TypeDef]   `json:"types"`
		Packages   arena[Package]   `json:"packages"`
	}
	proxy.Worlds.Items.res = res
	proxy.Worlds.Items.items = &res.Worlds
	proxy.Interfaces.Items.res = res
	proxy.Interfaces.Items.items = &res.Interfaces
	proxy.Types.Items.res = res
	proxy.Types.Items.items = &res.TypeDefs
	proxy.Packages.Items.res = res
	proxy.Packages.Items.items = &res.Packages
	return json.Unmarshal(data, &proxy)
}

type items[T any] struct {
	res   *Resolve
	items *[]*T
}

// UnmarshalJSON sizes the arena to the length of the JSON array in data,
// allocating one zero-valued entry per element. The elements' fields are
// not decoded.
func (dec *items[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*dec.items = make([]*T, len(raw))
	for i := range raw {
		(*dec.items)[i] = new(T)
	}
	return nil
}
