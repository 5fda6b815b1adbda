package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/eth2030/merkleroll/pkg/log"
	"github.com/eth2030/merkleroll/pkg/rollup"
	"github.com/holiman/uint256"
)

// treeFlags are the flags common to every subcommand: the hasher
// choice, the tree depth, the current root and index, and the
// frontier siblings at that index.
type treeFlags struct {
	hasher   string
	depth    uint64
	root     string
	index    uint64
	siblings string
}

func bindTreeFlags(fs *flagSet, t *treeFlags) {
	fs.StringVar(&t.hasher, "hasher", "keccak", "hash function: keccak, poseidon, or mimc")
	fs.Uint64Var(&t.depth, "depth", 32, "tree depth")
	fs.StringVar(&t.root, "root", "", "current root, 0x-prefixed hex")
	fs.Uint64Var(&t.index, "index", 0, "current next-empty-leaf index")
	fs.StringVar(&t.siblings, "siblings", "", "comma-separated 0x-prefixed frontier siblings, one per level")
}

func resolveHasher(name string, depth uint) (rollup.Hasher, error) {
	switch name {
	case "keccak":
		return rollup.NewKeccakHasher(depth), nil
	case "poseidon":
		return rollup.NewPoseidonHasher(depth), nil
	case "mimc":
		return rollup.NewMiMCHasher(depth), nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
}

func parseHexList(s string) ([]*uint256.Int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]*uint256.Int, len(parts))
	for i, p := range parts {
		v, err := parseHex(p)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseHex(s string) (*uint256.Int, error) {
	// uint256.FromHex rejects leading zeros, so strip them after the
	// 0x prefix; this also accepts the zero-padded values printResult
	// prints.
	norm := s
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			digits = "0"
		}
		norm = "0x" + digits
	}
	v, err := uint256.FromHex(norm)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return v, nil
}

// resolve turns the common flags into a hasher, a root (falling back
// to the hasher's own empty root when none is given), and the parsed
// sibling vector.
func (t *treeFlags) resolve() (rollup.Hasher, *uint256.Int, []*uint256.Int, error) {
	h, err := resolveHasher(t.hasher, uint(t.depth))
	if err != nil {
		return nil, nil, nil, err
	}
	root := h.PreHashedZero()[t.depth]
	if t.root != "" {
		root, err = parseHex(t.root)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	siblings, err := parseHexList(t.siblings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("siblings: %w", err)
	}
	if siblings == nil {
		siblings = h.PreHashedZero()[:t.depth]
	}
	return h, root, siblings, nil
}

func runAppend(logger *log.Logger, args []string) int {
	var t treeFlags
	var leaf string
	fs := newCustomFlagSet("rollupctl append")
	bindTreeFlags(fs, &t)
	fs.StringVar(&leaf, "leaf", "", "leaf value to append, 0x-prefixed hex")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	h, root, siblings, err := t.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	leafVal, err := parseHex(leaf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	res, err := rollup.Append(h, root, t.index, siblings, leafVal)
	if err != nil {
		logger.Error("append failed", "err", err)
		return 1
	}
	printResult(logger, res)
	return 0
}

func runRollUp(logger *log.Logger, args []string) int {
	var t treeFlags
	var leaves string
	fs := newCustomFlagSet("rollupctl rollup")
	bindTreeFlags(fs, &t)
	fs.StringVar(&leaves, "leaves", "", "comma-separated 0x-prefixed leaf values")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	h, root, siblings, err := t.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	leafVals, err := parseHexList(leaves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	res, err := rollup.RollUp(h, root, t.index, siblings, leafVals)
	if err != nil {
		logger.Error("rollup failed", "err", err)
		return 1
	}
	printResult(logger, res)
	return 0
}

func runSubTree(logger *log.Logger, args []string) int {
	var hasherName string
	var depth uint64
	var subDepth uint64
	var leaves string
	fs := newCustomFlagSet("rollupctl subtree")
	fs.StringVar(&hasherName, "hasher", "keccak", "hash function: keccak, poseidon, or mimc")
	fs.Uint64Var(&depth, "depth", 32, "tree depth")
	fs.Uint64Var(&subDepth, "subdepth", 4, "subtree depth")
	fs.StringVar(&leaves, "leaves", "", "comma-separated 0x-prefixed leaf values")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	h, err := resolveHasher(hasherName, uint(depth))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	leafVals, err := parseHexList(leaves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	root, err := rollup.SubTreeRoot(h, uint(subDepth), leafVals)
	if err != nil {
		logger.Error("subtree root failed", "err", err)
		return 1
	}
	b := root.Bytes32()
	fmt.Printf("subtree root: 0x%x\n", b)
	return 0
}

func printResult(logger *log.Logger, res *rollup.Result) {
	rootBytes := res.State.Root.Bytes32()
	logger.Info("new tree state", "root", fmt.Sprintf("0x%x", rootBytes), "index", res.State.Index)
	fmt.Printf("root:  0x%x\n", rootBytes)
	fmt.Printf("index: %d\n", res.State.Index)
	for i, s := range res.Siblings {
		b := s.Bytes32()
		fmt.Printf("sibling[%d]: 0x%x\n", i, b)
	}
}
