package wiener

import (
	"encoding/asn1"
	"encoding/csv"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// KeyParser defines the interface for reading public keys from various sources.
type KeyParser interface {
	// ParseKeys parses public keys from a source and returns them.
	ParseKeys(source string) ([]*PublicKey, error)
}

// JSONParser parses public keys from JSON files.
type JSONParser struct {
	NField    string // Field name for the modulus (default: "n")
	EField    string // Field name for the exponent (default: "e")
	NameField string // Field name for the label (default: "name")
}

// ParseKeys parses public keys from a JSON file.
//
// Expected format:
//
//	[
//	  {"name": "...", "n": 659017, "e": 469543},
//	  {"n": "1234...", "e": "0x5f..."}
//	]
func (p *JSONParser) ParseKeys(jsonFile string) ([]*PublicKey, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	nField := orDefault(p.NField, "n")
	eField := orDefault(p.EField, "e")
	nameField := orDefault(p.NameField, "name")

	keys := make([]*PublicKey, 0, len(items))
	for i, item := range items {
		key := &PublicKey{}

		if nameVal, ok := item[nameField]; ok {
			key.Name = fmt.Sprint(nameVal)
		} else {
			key.Name = fmt.Sprintf("%s#%d", jsonFile, i)
		}

		nVal, ok := item[nField]
		if !ok {
			return nil, errors.Errorf("key %d: missing %s field", i, nField)
		}
		if key.N, err = parseBigInt(nVal); err != nil {
			return nil, errors.Wrapf(err, "key %d: failed to parse %s", i, nField)
		}

		eVal, ok := item[eField]
		if !ok {
			return nil, errors.Errorf("key %d: missing %s field", i, eField)
		}
		if key.E, err = parseBigInt(eVal); err != nil {
			return nil, errors.Wrapf(err, "key %d: failed to parse %s", i, eField)
		}

		keys = append(keys, key)
	}
	return keys, nil
}

// CSVParser parses public keys from CSV files with a header row.
type CSVParser struct {
	NCol    string // Column name for the modulus (default: "n")
	ECol    string // Column name for the exponent (default: "e")
	NameCol string // Column name for the label (default: "name", optional)
}

// ParseKeys parses public keys from a CSV file.
func (p *CSVParser) ParseKeys(csvFile string) ([]*PublicKey, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	nCol := orDefault(p.NCol, "n")
	eCol := orDefault(p.ECol, "e")
	nameCol := orDefault(p.NameCol, "name")

	nIdx, eIdx, nameIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nCol:
			nIdx = i
		case eCol:
			eIdx = i
		case nameCol:
			nameIdx = i
		}
	}
	if nIdx == -1 || eIdx == -1 {
		return nil, errors.Errorf("missing required columns: %s or %s", nCol, eCol)
	}

	var keys []*PublicKey
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}

		key := &PublicKey{Name: fmt.Sprintf("%s#%d", csvFile, row)}
		if nameIdx >= 0 && nameIdx < len(record) {
			key.Name = record[nameIdx]
		}
		if nIdx >= len(record) || eIdx >= len(record) {
			return nil, errors.Errorf("row %d: too few columns", row)
		}
		if key.N, err = parseBigInt(record[nIdx]); err != nil {
			return nil, errors.Wrapf(err, "row %d: failed to parse %s", row, nCol)
		}
		if key.E, err = parseBigInt(record[eIdx]); err != nil {
			return nil, errors.Wrapf(err, "row %d: failed to parse %s", row, eCol)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// PEMParser parses RSA public keys from PEM files. Both "RSA PUBLIC KEY"
// (PKCS #1) and "PUBLIC KEY" (SubjectPublicKeyInfo) blocks are accepted;
// other blocks are skipped. Unlike crypto/x509, exponents of any size are
// allowed, which vulnerable keys need.
type PEMParser struct{}

var oidRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

// ParseKeys parses every RSA public key block in a PEM file.
func (p *PEMParser) ParseKeys(pemFile string) ([]*PublicKey, error) {
	data, err := os.ReadFile(pemFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	var keys []*PublicKey
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		var key *PublicKey
		switch block.Type {
		case "RSA PUBLIC KEY":
			key, err = parsePKCS1PublicKey(block.Bytes)
		case "PUBLIC KEY":
			key, err = parsePKIXPublicKey(block.Bytes)
		default:
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", len(keys))
		}
		key.Name = fmt.Sprintf("%s#%d", pemFile, len(keys))
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, errors.Errorf("no RSA public key found in %s", pemFile)
	}
	return keys, nil
}

// parsePKCS1PublicKey decodes RSAPublicKey ::= SEQUENCE { modulus, publicExponent }.
func parsePKCS1PublicKey(der []byte) (*PublicKey, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	n, e := new(big.Int), new(big.Int)
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(n) ||
		!seq.ReadASN1Integer(e) ||
		!seq.Empty() {
		return nil, errors.New("malformed PKCS #1 public key")
	}
	return &PublicKey{N: n, E: e}, nil
}

// parsePKIXPublicKey decodes a SubjectPublicKeyInfo wrapping an RSA key.
func parsePKIXPublicKey(der []byte) (*PublicKey, error) {
	input := cryptobyte.String(der)
	var (
		spki, algo cryptobyte.String
		oid        asn1.ObjectIdentifier
		bits       asn1.BitString
	)
	if !input.ReadASN1(&spki, cbasn1.SEQUENCE) || !input.Empty() ||
		!spki.ReadASN1(&algo, cbasn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&oid) ||
		!spki.ReadASN1BitString(&bits) ||
		!spki.Empty() {
		return nil, errors.New("malformed SubjectPublicKeyInfo")
	}
	if !oid.Equal(oidRSAEncryption) {
		return nil, errors.Errorf("unsupported public key algorithm %s", oid)
	}
	return parsePKCS1PublicKey(bits.RightAlign())
}

// parseBigInt parses a big integer from a JSON number, a decimal string, or a
// hex string with 0x prefix.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		z := new(big.Int)
		if h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"); h != s {
			if _, ok := z.SetString(h, 16); !ok {
				return nil, errors.Errorf("invalid hex number: %s", v)
			}
			return z, nil
		}
		if _, ok := z.SetString(s, 10); ok {
			return z, nil
		}
		// Bare hex without prefix.
		if _, ok := z.SetString(s, 16); ok {
			return z, nil
		}
		return nil, errors.Errorf("invalid number format: %s", v)

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		z, acc := big.NewFloat(v).Int(nil)
		if acc != big.Exact {
			return nil, errors.Errorf("not an integer: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, errors.Errorf("unsupported type: %T", val)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
