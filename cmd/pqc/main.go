package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bwesterb/go-pqc"
	"github.com/bwesterb/go-pqc/internal/keyfile"
	"github.com/bwesterb/go-pqc/prehash"
)

func cmdAlgs(c *cli.Context) error {
	for _, name := range pqc.ListNames() {
		s := pqc.SchemeByName(name)
		fmt.Fprintf(c.App.Writer, "%-20s pk %5d  sk %5d  sig %5d\n", s.Name(),
			s.PublicKeySize(), s.PrivateKeySize(), s.SignatureSize())
	}
	return nil
}

func scheme(name string) (pqc.Scheme, error) {
	s := pqc.SchemeByName(name)
	if s == nil {
		return nil, fmt.Errorf("unknown algorithm %q; see `pqc algs`", name)
	}
	return s, nil
}

// Reads a key file of the given kind and returns its scheme.
func readKey(path string, kind keyfile.Kind) (pqc.Scheme, []byte, error) {
	f, err := keyfile.Read(path)
	if err != nil {
		return nil, nil, err
	}
	if f.Kind != kind {
		return nil, nil, fmt.Errorf("%s holds a %s, not a %s", path, f.Kind, kind)
	}
	s, err2 := scheme(f.Scheme)
	if err2 != nil {
		return nil, nil, err2
	}
	return s, f.Key, nil
}

// Returns the pre-hash function from the --prehash flag, if any.
func prehashFlag(c *cli.Context) (prehash.Function, bool, error) {
	name := c.String("prehash")
	if name == "" {
		return 0, false, nil
	}
	fn, err := prehash.FromName(name)
	if err != nil {
		return 0, false, err
	}
	return fn, true, nil
}

func cmdKeygen(c *cli.Context) error {
	s, err := scheme(c.String("alg"))
	if err != nil {
		return err
	}
	base := c.String("out")
	if base == "" {
		return fmt.Errorf("missing --out")
	}

	pk, sk, err2 := s.GenerateKey(nil)
	if err2 != nil {
		return err2
	}
	if err := keyfile.Write(base+".key", &keyfile.File{
		Kind: keyfile.PrivateKey, Scheme: s.Name(), Key: sk}); err != nil {
		return err
	}
	if err := keyfile.Write(base+".pub", &keyfile.File{
		Kind: keyfile.PublicKey, Scheme: s.Name(), Key: pk}); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s.key\n%s.pub\n", base, base)
	return nil
}

func cmdSign(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a single file to sign")
	}
	s, sk, err := readKey(c.String("key"), keyfile.PrivateKey)
	if err != nil {
		return err
	}
	ph, usePh, err := prehashFlag(c)
	if err != nil {
		return err
	}
	msg, closer, err2 := keyfile.MapFile(c.Args().First())
	if err2 != nil {
		return err2
	}
	defer closer()

	ctx := []byte(c.String("context"))
	var sig []byte
	var err3 pqc.Error
	if usePh {
		sig, err3 = s.HashSign(sk, msg, ctx, ph, c.Bool("deterministic"))
	} else {
		sig, err3 = s.Sign(sk, msg, ctx, c.Bool("deterministic"))
	}
	if err3 != nil {
		return err3
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(sig))
	return nil
}

func cmdVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a single file to verify")
	}
	s, pk, err := readKey(c.String("key"), keyfile.PublicKey)
	if err != nil {
		return err
	}
	ph, usePh, err := prehashFlag(c)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(strings.TrimSpace(c.String("sig")))
	if err != nil {
		return fmt.Errorf("--sig is not hex: %v", err)
	}
	msg, closer, err2 := keyfile.MapFile(c.Args().First())
	if err2 != nil {
		return err2
	}
	defer closer()

	ctx := []byte(c.String("context"))
	var err3 pqc.Error
	if usePh {
		_, err3 = s.HashVerify(pk, msg, ctx, sig, ph)
	} else {
		_, err3 = s.Verify(pk, msg, ctx, sig)
	}
	if err3 != nil {
		return err3
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

func cmdDigest(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a single file")
	}
	ph, usePh, err := prehashFlag(c)
	if err != nil {
		return err
	}
	if !usePh {
		ph = prehash.SHA3_256
	}
	msg, closer, err2 := keyfile.MapFile(c.Args().First())
	if err2 != nil {
		return err2
	}
	defer closer()

	_, digest, err2 := prehash.Digest(ph, msg)
	if err2 != nil {
		return err2
	}
	fmt.Fprintf(c.App.Writer, "%s  %s\n", hex.EncodeToString(digest), c.Args().First())
	return nil
}

func cmdSelfTest(c *cli.Context) error {
	if c.Bool("verbose") {
		pqc.EnableLogging()
	}
	if err := pqc.SelfTest(c.Args()...); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pqc"
	app.Usage = "ML-DSA and SLH-DSA signatures"

	keyFlag := cli.StringFlag{
		Name:  "key, k",
		Usage: "key file",
	}
	contextFlag := cli.StringFlag{
		Name:  "context, c",
		Usage: "context string, at most 255 bytes",
	}
	phFlag := cli.StringFlag{
		Name:  "prehash, p",
		Usage: "sign the digest of the file, eg. SHA2-512",
	}

	app.Commands = []cli.Command{
		{
			Name:   "algs",
			Usage:  "List supported algorithms",
			Action: cmdAlgs,
		},
		{
			Name:   "keygen",
			Usage:  "Generate a key pair",
			Action: cmdKeygen,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "alg, a",
					Value: "ML-DSA-65",
					Usage: "algorithm, see `pqc algs`",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the keys to BASE.key and BASE.pub",
				},
			},
		},
		{
			Name:      "sign",
			Usage:     "Sign a file",
			ArgsUsage: "FILE",
			Action:    cmdSign,
			Flags: []cli.Flag{
				keyFlag,
				contextFlag,
				phFlag,
				cli.BoolFlag{
					Name:  "deterministic, d",
					Usage: "do not use randomness",
				},
			},
		},
		{
			Name:      "verify",
			Usage:     "Verify the signature on a file",
			ArgsUsage: "FILE",
			Action:    cmdVerify,
			Flags: []cli.Flag{
				keyFlag,
				contextFlag,
				phFlag,
				cli.StringFlag{
					Name:  "sig, s",
					Usage: "hex encoded signature",
				},
			},
		},
		{
			Name:      "digest",
			Usage:     "Hash a file with one of the pre-hash functions",
			ArgsUsage: "FILE",
			Action:    cmdDigest,
			Flags:     []cli.Flag{phFlag},
		},
		{
			Name:      "selftest",
			Usage:     "Sign and verify with every algorithm",
			ArgsUsage: "[ALG...]",
			Action:    cmdSelfTest,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "verbose, v",
					Usage: "log progress",
				},
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
