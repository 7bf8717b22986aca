package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// CleanDir makes sure that dirname exists and contains nothing except the entries named in
// keeps.
func CleanDir(dirname string, keeps ...string) error {
	err := os.MkdirAll(dirname, 0755)
	if err != nil {
		return err
	}

	fis, err := ioutil.ReadDir(dirname)
	if err != nil {
		return err
	}

	keep := map[string]struct{}{}
	for _, k := range keeps {
		keep[k] = struct{}{}
	}

	for _, fi := range fis {
		if _, ok := keep[fi.Name()]; ok {
			continue
		}
		err = os.RemoveAll(filepath.Join(dirname, fi.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}
