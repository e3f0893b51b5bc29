package starmap

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// NumPrefixes is the number of Greek designations a constellation can hand out
const NumPrefixes = 24

//go:embed names/en.po
var namesPo []byte

var (
	namesOnce sync.Once
	names     *gotext.Po
)

func catalogNames() *gotext.Po {
	namesOnce.Do(func() {
		names = gotext.NewPo()
		names.Parse(namesPo)
	})
	return names
}

func lookup(key string) (string, bool) {
	s := catalogNames().Get(key)
	// gotext hands back the key when there is no translation
	return s, s != key
}

// Name is the display name of a star: "<prefix> <constellation>" for a
// constellation member, the bare name for a lone star.
func (s Star) Name() string {
	post, ok := lookup(fmt.Sprintf("POSTFIX_%d", s.Postfix))
	if !ok {
		return fmt.Sprintf("Star %d", s.Postfix)
	}
	if s.Prefix == 0 {
		return post
	}
	pre, ok := lookup(fmt.Sprintf("PREFIX_%d", s.Prefix))
	if !ok {
		return post
	}
	return pre + " " + post
}
