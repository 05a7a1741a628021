package main

import (
	"os"
	"path/filepath"

	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/containers/opendir/version"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("opendir", func() {
	var (
		base       string
		configPath string
	)

	BeforeEach(func() {
		base = makeTree()
		configPath = filepath.Join(base, "opendir.conf")
	})

	Context("normalize", func() {
		It("prints the normalized path", func() {
			out, err := runOpendir(configPath, "normalize", "a/./b/../c", "../a/../../b", "a//b///c")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("a/c\n../../b\na/b/c\n"))
		})

		It("rejects paths without a final name", func() {
			out, err := runOpendir(configPath, "normalize", "/", "x")
			Expect(err).To(MatchError(ContainSubstring("invalid path")))
			Expect(out).To(Equal("x\n"))
		})

		It("requires a path", func() {
			_, err := runOpendir(configPath, "normalize")
			Expect(err).To(MatchError(ContainSubstring("requires at least one path")))
		})
	})

	Context("ls", func() {
		It("lists a directory without following symlinks", func() {
			out, err := runOpendir(configPath, "ls", "--follow-symlinks=false", filepath.Join(base, "real"))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("file\nsub\n"))
		})

		It("refuses an intermediate symlink only in no-follow mode", func() {
			path := filepath.Join(base, "link", "sub")

			_, err := runOpendir(configPath, "ls", "--follow-symlinks=false", path)
			Expect(err).To(MatchError(ContainSubstring("not a directory")))

			out, err := runOpendir(configPath, "ls", path)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("one\n"))
		})

		It("takes the default mode from the configuration file", func() {
			Expect(os.WriteFile(configPath, []byte("[opendir]\nfollow_symlinks = false\n"), 0o644)).To(Succeed())
			_, err := runOpendir(configPath, "ls", filepath.Join(base, "link", "sub"))
			Expect(err).To(MatchError(ContainSubstring("not a directory")))
			Expect(registry.Config().Opendir.FollowSymlinks).To(BeFalse())

			_, err = runOpendir(configPath, "ls", "--follow-symlinks", filepath.Join(base, "link", "sub"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("honours path_max from the configuration file", func() {
			Expect(os.WriteFile(configPath, []byte("[opendir]\npath_max = 8\n"), 0o644)).To(Succeed())
			_, err := runOpendir(configPath, "ls", "--follow-symlinks=false", filepath.Join(base, "real"))
			Expect(err).To(MatchError(ContainSubstring("limit is 8")))
		})

		It("shows mode and size in long format", func() {
			out, err := runOpendir(configPath, "ls", "-l", filepath.Join(base, "real"))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(MatchRegexp(`(?m)^-rw\S+ +4B file$`))
			Expect(out).To(MatchRegexp(`(?m)^drw\S+ +\S+ sub$`))
		})

		It("prints a header per path and aggregates errors", func() {
			out, err := runOpendir(configPath, "ls", filepath.Join(base, "real"), filepath.Join(base, "missing"), filepath.Join(base, "real", "sub"))
			Expect(err).To(MatchError(ContainSubstring("no such file or directory")))
			Expect(out).To(ContainSubstring(filepath.Join(base, "real") + ":\nfile\nsub\n"))
			Expect(out).To(ContainSubstring(filepath.Join(base, "real", "sub") + ":\none\n"))
		})

		It("starts with a header when the first path fails", func() {
			out, err := runOpendir(configPath, "ls", filepath.Join(base, "missing"), filepath.Join(base, "real", "sub"))
			Expect(err).To(MatchError(ContainSubstring("no such file or directory")))
			Expect(out).To(Equal(filepath.Join(base, "real", "sub") + ":\none\n"))
		})

		It("emits json", func() {
			out, err := runOpendir(configPath, "ls", "--format", "json", "--root", base, "real")
			Expect(err).ToNot(HaveOccurred())

			var reports []lsReport
			Expect(registry.JSONLibrary().Unmarshal([]byte(out), &reports)).To(Succeed())
			Expect(reports).To(HaveLen(1))
			Expect(reports[0].Path).To(Equal("real"))
			Expect(reports[0].Entries).To(Equal([]lsEntry{{Name: "file"}, {Name: "sub"}}))
		})

		It("lists many paths with a single worker", func() {
			out, err := runOpendir(configPath, "ls", "--max-workers", "1", "--follow-symlinks=false",
				filepath.Join(base, "real", "sub"), filepath.Join(base, "link", "sub"), filepath.Join(base, "real", "sub"))
			Expect(err).To(MatchError(ContainSubstring("not a directory")))
			Expect(out).To(Equal(filepath.Join(base, "real", "sub") + ":\none\n\n" + filepath.Join(base, "real", "sub") + ":\none\n"))

			_, err = runOpendir(configPath, "ls", "--max-workers", "0", base)
			Expect(err).To(MatchError(ContainSubstring("maximum workers must be set to a positive number")))
		})

		It("rejects unknown formats", func() {
			_, err := runOpendir(configPath, "ls", "--format", "yaml", base)
			Expect(err).To(MatchError(ContainSubstring(`unsupported format "yaml"`)))
		})
	})

	Context("check", func() {
		It("reports clean paths", func() {
			out, err := runOpendir(configPath, "check", filepath.Join(base, "real", "sub"))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(filepath.Join(base, "real", "sub") + ": ok\n"))
		})

		It("reports the failing component as json", func() {
			out, err := runOpendir(configPath, "check", "--format", "json", filepath.Join(base, "link", "sub"), filepath.Join(base, "real"))
			Expect(err).ToNot(HaveOccurred())
			Expect(registry.GetExitCode()).To(Equal(1))

			var reports []checkReport
			Expect(registry.JSONLibrary().Unmarshal([]byte(out), &reports)).To(Succeed())
			Expect(reports).To(HaveLen(2))
			Expect(reports[0].OK).To(BeFalse())
			Expect(reports[0].Kind).To(Equal("not a directory"))
			Expect(reports[0].Op).To(Equal("lstat"))
			Expect(reports[0].Errno).ToNot(BeZero())
			Expect(reports[1].OK).To(BeTrue())
			Expect(reports[1].Name).To(Equal(filepath.Join(base, "real")))
		})

		It("refuses to escape the root", func() {
			_, err := runOpendir(configPath, "check", "--root", filepath.Join(base, "real"), "../link")
			Expect(err).To(MatchError(ContainSubstring("escapes root")))
		})
	})

	Context("root command", func() {
		It("prints the version", func() {
			out, err := runOpendir(configPath, "version")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("Version: " + version.Version.String() + "\n"))
		})

		It("suggests commands", func() {
			_, err := runOpendir(configPath, "lx")
			Expect(err).To(MatchError(ContainSubstring("Did you mean this?")))
		})

		It("rejects unknown log levels", func() {
			_, err := runOpendir(configPath, "--log-level", "loud", "version")
			Expect(err).To(MatchError(ContainSubstring(`log level "loud" is not supported`)))
		})

		It("accepts an empty log level in the configuration file", func() {
			Expect(os.WriteFile(configPath, []byte("[opendir]\nlog_level = \"\"\n"), 0o644)).To(Succeed())
			_, err := runOpendir(configPath, "version")
			Expect(err).ToNot(HaveOccurred())
		})

		It("rejects log levels the command does not support", func() {
			Expect(os.WriteFile(configPath, []byte("[opendir]\nlog_level = \"warning\"\n"), 0o644)).To(Succeed())
			_, err := runOpendir(configPath, "version")
			Expect(err).To(MatchError(ContainSubstring(`invalid log_level "warning"`)))
		})

		It("rejects broken configuration files", func() {
			Expect(os.WriteFile(configPath, []byte("[opendir\n"), 0o644)).To(Succeed())
			_, err := runOpendir(configPath, "version")
			Expect(err).To(MatchError(ContainSubstring("decoding configuration file")))
		})
	})
})
