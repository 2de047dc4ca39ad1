package pak_test

import (
	"errors"
	"fmt"

	"github.com/yndnr/pak-go/pkg/pak"
)

func Example() {
	gen, err := pak.NewBuilder().Prefix("mycompany").StandardDefaults().Finalize()
	if err != nil {
		panic(err)
	}

	key, hash, err := gen.GenerateKeyAndHash()
	if err != nil {
		panic(err)
	}

	// Hand key.FullString() to the user once; store only hash.
	parsed, _ := pak.ParseKey(key.FullString())
	fmt.Println(gen.CheckHash(parsed, hash))
	// Output: true
}

func ExampleParseKey() {
	key, err := pak.ParseKey("mycompany_CEUsS4psCmc_BddpcwWyCT3EkDjHSSTRaSK1dxtuQgbjb")
	if err != nil {
		panic(err)
	}

	fmt.Println(key.Prefix())
	fmt.Println(key.ShortToken())
	fmt.Println(key)
	// Output:
	// mycompany
	// CEUsS4psCmc
	// mycompany_CEUsS4psCmc_***
}

func ExampleParseKey_malformed() {
	_, err := pak.ParseKey("mycompany_only-two")

	var me *pak.MalformedKeyError
	if errors.As(err, &me) {
		fmt.Println(me.Segments)
	}
	// Output: 2
}

func ExampleBuilder_Finalize() {
	_, err := pak.NewBuilder().Prefix("mycompany").OSRandom().Finalize()
	fmt.Println(err)
	// Output: [PAK-CFG-4001] incomplete configuration: expected digest to be set, but wasn't
}

func ExampleGenerator_HashOf() {
	gen, _ := pak.NewBuilder().Prefix("mycompany").StandardDefaults().Finalize()
	key, _ := pak.ParseKey("mycompany_CEUsS4psCmc_BddpcwWyCT3EkDjHSSTRaSK1dxtuQgbjb")

	fmt.Println(gen.HashOf(key))
	// Output: 0f01ab6e0833f280b73b2b618c16102d91c0b7c585d42a080d6e6603239a8bee
}
