package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/containers/opendir/cmd/opendir/registry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpendirCommand(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "opendir command suite")
}

// runOpendir executes the root command in process, returning everything
// written to stdout and stderr.
func runOpendir(configPath string, args ...string) (string, error) {
	registry.SetExitCode(0)
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// makeTree creates real/{file,sub/one} and link -> real below a fresh
// temporary directory without symlinks in its own path.
func makeTree() string {
	base, err := filepath.EvalSymlinks(GinkgoT().TempDir())
	Expect(err).ToNot(HaveOccurred())
	Expect(os.MkdirAll(filepath.Join(base, "real", "sub"), 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(base, "real", "file"), []byte("data"), 0o644)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(base, "real", "sub", "one"), nil, 0o644)).To(Succeed())
	Expect(os.Symlink("real", filepath.Join(base, "link"))).To(Succeed())
	return base
}
