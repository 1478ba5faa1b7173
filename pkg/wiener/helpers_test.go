package wiener

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
)

// testKeyInfo holds the secret half of a fixture key.
type testKeyInfo struct {
	Name string
	P    *big.Int
	Q    *big.Int
	D    *big.Int
}

// loadTestKeyInfo reads the expected factors and exponent for a fixture key
// from fixtures/test_key_info.json.
func loadTestKeyInfo(name string) (*testKeyInfo, error) {
	file, err := os.Open("../../fixtures/test_key_info.json")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var rawData []map[string]interface{}
	if err := decoder.Decode(&rawData); err != nil {
		return nil, err
	}

	for _, item := range rawData {
		if item["name"] != name {
			continue
		}
		info := &testKeyInfo{Name: name}
		for field, dst := range map[string]**big.Int{"p": &info.P, "q": &info.Q, "d": &info.D} {
			v, err := parseBigInt(item[field])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, field, err)
			}
			*dst = v
		}
		return info, nil
	}
	return nil, fmt.Errorf("no key info for %q", name)
}

// loadTestKey loads one public key by name from fixtures/test_keys.json.
func loadTestKey(name string) (*PublicKey, error) {
	parser := &JSONParser{}
	keys, err := parser.ParseKeys("../../fixtures/test_keys.json")
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if key.Name == name {
			return key, nil
		}
	}
	return nil, fmt.Errorf("no key named %q", name)
}

// toyKey is N = 661 * 997 with d = 7.
func toyKey() *PublicKey {
	return &PublicKey{Name: "toy", N: big.NewInt(659017), E: big.NewInt(469543)}
}
