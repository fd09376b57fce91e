package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/loader"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/model"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/resource"
)

// buildOpts holds the command-line flags for the build command.
// These options control resource resolution, caching, and the anatomy
// role table used during construction.
type buildOpts struct {
	srdf         string   // semantic description URI (optional)
	output       string   // output file path (stdout if empty)
	roleTable    string   // TOML role table overriding the default link names
	packageRoots []string // directories searched for package:// URIs
	redis        string   // redis address for the resource cache
	noCache      bool     // disable resource caching entirely
	humanoid     bool     // require at least one derived end-effector frame
}

// newBuildCmd creates the build command.
// It fetches a URDF description (plain path, file://, package:// or
// http(s)://), constructs the kinematic tree, and writes the model as JSON.
//
// Default options:
//   - caching: file cache under the user cache directory
//   - role table: the conventional humanoid link names
func newBuildCmd() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <urdf-uri>",
		Short: "Build a kinematic tree from a robot description",
		Long: `Build a kinematic tree from a URDF robot description.

The description is fetched through the resource retriever, so plain file
paths, file://, package:// and http(s):// URIs all work. With --srdf the
semantic description is loaded alongside and its disabled collision pairs
are reported.

Examples:
  hppmodel build robot.urdf
  hppmodel build package://hrp2_14_description/urdf/hrp2_14.urdf --package-root ~/ros
  hppmodel build robot.urdf --srdf robot.srdf -o robot.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.srdf, "srdf", "", "semantic description URI")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.roleTable, "role-table", "", "TOML file overriding the anatomy role table")
	cmd.Flags().StringSliceVar(&opts.packageRoots, "package-root", nil, "directory searched for package:// URIs (repeatable)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for the resource cache (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable resource caching")
	cmd.Flags().BoolVar(&opts.humanoid, "humanoid", false, "fail unless at least one hand or foot frame was derived")

	return cmd
}

// newRetriever assembles the resource retriever for the build command,
// wrapping it in the configured cache backend.
func (o *buildOpts) newRetriever(ctx context.Context) (resource.Retriever, error) {
	base := resource.NewRetriever(resource.Config{PackageRoots: o.packageRoots})
	if o.noCache {
		return base, nil
	}

	var (
		cache resource.Cache
		err   error
	)
	if o.redis != "" {
		cache, err = resource.NewRedisCache(ctx, resource.RedisConfig{Addr: o.redis})
	} else {
		var dir string
		dir, err = cacheDir()
		if err == nil {
			cache, err = resource.NewFileCache(dir)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("resource cache: %w", err)
	}
	return resource.NewCaching(base, cache, resource.DefaultTTL), nil
}

// parserOptions translates the flags into model parser options.
func (o *buildOpts) parserOptions() ([]model.Option, error) {
	if o.roleTable == "" {
		return nil, nil
	}
	table, err := model.LoadRoleTable(o.roleTable)
	if err != nil {
		return nil, err
	}
	return []model.Option{model.WithRoleTable(table)}, nil
}

// runBuild fetches the description, builds the model and writes it as JSON.
func runBuild(ctx context.Context, uri string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Building %s", uri)

	retriever, err := opts.newRetriever(ctx)
	if err != nil {
		return err
	}
	parserOpts, err := opts.parserOptions()
	if err != nil {
		return err
	}
	ld := loader.New(retriever, parserOpts...)

	prog := newProgress(logger)
	result, err := ld.Load(ctx, uri, opts.srdf)
	if err != nil {
		return err
	}
	robot := result.Robot
	prog.done(fmt.Sprintf("Built %d joints for %s", robot.JointCount(), robot.Name()))

	for _, w := range robot.Warnings() {
		printWarning("%s", w)
	}
	for _, f := range robot.GeometryFailures() {
		printWarning("link %s: %v", f.Link, f.Err)
	}
	if opts.humanoid {
		a := robot.Anatomy()
		if a.LeftHand == nil && a.RightHand == nil && a.LeftFoot == nil && a.RightFoot == nil {
			return fmt.Errorf("model %s resolved no end-effector frames; check the anatomy role table", robot.Name())
		}
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.WriteJSON(robot, out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Built %s", robot.Name())
		printStats(robot.JointCount(), len(robot.ActuatedJoints()), len(robot.Geometry()))
		if result.DisabledCollisions != nil {
			printDetail("%d disabled collision pairs", len(result.DisabledCollisions))
		}
		printFile(opts.output)
		printNextStep("Render it", fmt.Sprintf("hppmodel render %s", opts.output))
	}
	return nil
}
