package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
)

// validateResult is the outcome of checking one file.
type validateResult struct {
	path    string
	stats   string
	repairs []string
	err     error
}

// validateCommand creates the validate command for checking blueprint files.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict bool
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check blueprint files",
		Long: `Load each blueprint, reconstruct its docking graph and check every
structural invariant. Repairs to legacy port data are listed; with --strict a
file that needed repairs fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.structureCatalog()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			results, err := validateFiles(cmd.Context(), cat, args, jobs)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Checked %d files", len(results)))

			failed := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					printError("%s: %s", r.path, errors.UserMessage(r.err))
				case len(r.repairs) > 0 && strict:
					failed++
					printError("%s: %d repairs needed", r.path, len(r.repairs))
				case len(r.repairs) > 0:
					printWarning("%s: %d repairs", r.path, len(r.repairs))
				default:
					printSuccess("%s %s", r.path, StyleDim.Render(r.stats))
				}
				for _, rep := range r.repairs {
					printRepair(rep)
				}
			}

			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "%d of %d blueprints failed validation", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat repairs as failures")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files checked in parallel")
	return cmd
}

// validateFiles checks paths concurrently. Per-file failures are reported in
// the results; the returned error is only set when ctx is cancelled.
func validateFiles(ctx context.Context, cat *catalog.Catalog, paths []string, jobs int) ([]validateResult, error) {
	results := make([]validateResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateFile(cat, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateFile(cat *catalog.Catalog, path string) validateResult {
	r := validateResult{path: filepath.Clean(path)}
	bp, repairs, err := pkgio.ImportJSON(path, cat)
	if err != nil {
		r.err = err
		return r
	}
	for _, rep := range repairs {
		r.repairs = append(r.repairs, rep.String())
	}
	if err := bp.Validate(); err != nil {
		r.err = err
		return r
	}
	st := bp.Stats()
	r.stats = fmt.Sprintf("%d structures · %d docked pairs · %d secondary roots", st.Structures, st.DockedPairs, st.SecondaryRoots)
	return r
}
