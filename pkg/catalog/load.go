package catalog

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kitchenrun/pkg/errors"
)

// Load reads a TOML catalog file and overlays it on the built-in catalog.
// Top-level arrays present in the file (modules, facades, countertops,
// carcasses) replace the built-in ones wholesale; absent arrays keep their
// defaults. The result is validated before it is returned.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "catalog file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "open catalog %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML catalog from r. See [Load] for overlay semantics.
func Decode(r io.Reader) (*Catalog, error) {
	var file Catalog
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown catalog key %q", undecoded[0].String())
	}

	c := Default()
	if md.IsDefined("modules") {
		c.Modules = file.Modules
	}
	if md.IsDefined("facades") {
		c.Facades = file.Facades
	}
	if md.IsDefined("countertops") {
		c.Countertops = file.Countertops
	}
	if md.IsDefined("carcasses") {
		c.Carcasses = file.Carcasses
	}
	for i := range c.Facades {
		fin, err := ParseFinish(string(c.Facades[i].Finish))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "facade %s", c.Facades[i].ID)
		}
		c.Facades[i].Finish = fin
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c as TOML to w. The output round-trips through [Decode].
func Encode(w io.Writer, c *Catalog) error {
	return toml.NewEncoder(w).Encode(c)
}
