package abi

import (
	"testing"

	"github.com/indexsupply/ethabi/tc"
	"kr.dev/diff"
)

const erc20 = `[
	{"type": "constructor", "inputs": [{"name": "supply", "type": "uint256"}]},
	{"type": "event", "name": "Transfer", "anonymous": false, "inputs": [
		{"indexed": true, "name": "from", "type": "address"},
		{"indexed": true, "name": "to", "type": "address"},
		{"indexed": false, "name": "value", "type": "uint256"}
	]},
	{"type": "function", "name": "balanceOf", "stateMutability": "view",
		"inputs": [{"name": "owner", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]},
	{"type": "function", "name": "transfer", "stateMutability": "nonpayable",
		"inputs": [{"name": "to", "type": "address"}, {"name": "value", "type": "uint256"}],
		"outputs": [{"name": "", "type": "bool"}]},
	{"name": "safeTransferFrom", "constant": false,
		"inputs": [{"name": "from", "type": "address"}, {"name": "to", "type": "address"}, {"name": "id", "type": "uint256"}],
		"outputs": []},
	{"type": "function", "name": "safeTransferFrom", "stateMutability": "nonpayable",
		"inputs": [{"name": "from", "type": "address"}, {"name": "to", "type": "address"}, {"name": "id", "type": "uint256"}, {"name": "data", "type": "bytes"}],
		"outputs": []},
	{"type": "fallback"}
]`

func TestParseABI(t *testing.T) {
	c, err := ParseABI([]byte(erc20))
	tc.NoErr(t, err)
	var sigs []string
	for _, f := range c.Functions {
		sigs = append(sigs, f.Signature())
	}
	diff.Test(t, t.Errorf, sigs, []string{
		"balanceOf(address)",
		"transfer(address,uint256)",
		"safeTransferFrom(address,address,uint256)",
		"safeTransferFrom(address,address,uint256,bytes)",
	})

	f, ok := c.Function("balanceOf")
	diff.Test(t, t.Errorf, ok, true)
	diff.Test(t, t.Errorf, f.Constant, true)
	diff.Test(t, t.Errorf, f.Inputs[0].Name, "owner")
	diff.Test(t, t.Errorf, len(c.Overloads("safeTransferFrom")), 2)
	diff.Test(t, t.Errorf, len(c.Overloads("Transfer")), 0)
}

func TestParseABIErrors(t *testing.T) {
	for _, js := range []string{
		`{}`,
		`[{"type": "function", "name": "f", "inputs": [{"type": "uint9"}]}]`,
		`[1]`,
	} {
		if _, err := ParseABI([]byte(js)); err == nil {
			t.Errorf("expected error for %s", js)
		}
	}
}

func TestBySelector(t *testing.T) {
	c, err := ParseABI([]byte(erc20))
	tc.NoErr(t, err)
	f, ok := c.BySelector([4]byte{0xa9, 0x05, 0x9c, 0xbb})
	diff.Test(t, t.Errorf, ok, true)
	diff.Test(t, t.Errorf, f.Name, "transfer")

	_, ok = c.BySelector([4]byte{})
	diff.Test(t, t.Errorf, ok, false)
}

func TestFind(t *testing.T) {
	c, err := ParseABI([]byte(erc20))
	tc.NoErr(t, err)

	f, err := c.Find("transfer")
	tc.NoErr(t, err)
	diff.Test(t, t.Errorf, f.Signature(), "transfer(address,uint256)")

	f, err = c.Find("safeTransferFrom(address, address, uint, bytes)")
	tc.NoErr(t, err)
	diff.Test(t, t.Errorf, f.Inputs[3].Name, "data")

	_, err = c.Find("safeTransferFrom")
	if err == nil {
		t.Error("expected overload error")
	}
	_, err = c.Find("approve")
	tc.WantErr(t, err, ErrNotFound)
	_, err = c.Find("transfer(address)")
	tc.WantErr(t, err, ErrNotFound)
}
