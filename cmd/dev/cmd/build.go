package cmd

import (
	"fmt"
	"runtime"

	"github.com/gophertribe/devtool/build"
	"github.com/spf13/cobra"
)

const configPackage = "github.com/rockts/noise-db-converter/pkg/config"

// BuildCmd builds the noise cli natively, or inside the build image when
// the target platform differs from the host. Cgo is required by the usb
// hid enumeration.
func BuildCmd() *cobra.Command {
	var opts struct {
		os, arch, version  string
		crossOS, crossArch string
		noCache            bool
	}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the noise cli",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.os == runtime.GOOS && opts.arch == runtime.GOARCH {
				// inside the build image the target comes from --cross-os/--cross-arch
				if opts.crossOS != "" && opts.crossArch != "" {
					opts.os, opts.arch = opts.crossOS, opts.crossArch
				}
				return build.GoBuild("dist/noise", "./cmd/noise", build.GoBuildOpts{
					Version:       opts.version,
					InjectVersion: true,
					ConfigPackage: configPackage,
					EnableCgo:     true,
					Arch:          opts.arch,
					OS:            opts.os,
				})
			}
			err := build.Docker(cmd.Context(), fmt.Sprintf("./dev-%s-%s", opts.os, opts.arch), []string{"build", "--version", opts.version, "--cross-os", opts.os, "--cross-arch", opts.arch}, build.DockerBuildOpts{
				NoCache: opts.noCache,
				Image:   "gophertribe/gobuild:1.25-bookworm",
			})
			if err != nil {
				return fmt.Errorf("could not build for %s/%s: %w", opts.os, opts.arch, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use cache when building the app")
	cmd.Flags().StringVar(&opts.version, "version", "latest", "version of the cli")
	cmd.Flags().StringVar(&opts.os, "os", runtime.GOOS, "os to build for")
	cmd.Flags().StringVar(&opts.arch, "arch", runtime.GOARCH, "arch to build for")
	cmd.Flags().StringVar(&opts.crossOS, "cross-os", "", "os to cross-compile for")
	cmd.Flags().StringVar(&opts.crossArch, "cross-arch", "", "arch to cross-compile for")
	return cmd
}
