package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/service"
)

// fileResult is one line of `validate` output.
type fileResult struct {
	File   string          `json:"file"`
	Report *service.Report `json:"report,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate exported record files and print one JSON report per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			results, reqs, idx := readRequests(args)
			for i, out := range a.svc.ValidateAll(cmd.Context(), reqs) {
				r := &results[idx[i]]
				r.Report = out.Report
				if out.Err != nil {
					r.Error = out.Err.Error()
				}
			}
			return writeResults(cmd.OutOrStdout(), results)
		},
	}
}

// readRequests decodes every file.  idx[i] is the position in results of
// reqs[i]; files that fail to decode keep their error and get no request.
func readRequests(files []string) (results []fileResult, reqs []*record.ValidationRequest, idx []int) {
	results = make([]fileResult, len(files))
	for i, f := range files {
		results[i].File = f
		req, err := decodeFile(f)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		reqs = append(reqs, req)
		idx = append(idx, i)
	}
	return results, reqs, idx
}

func decodeFile(path string) (*record.ValidationRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var req record.ValidationRequest
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &req, nil
}

// writeResults prints one JSON object per line and returns errInvalid if
// any file errored or produced an invalid report.
func writeResults(w io.Writer, results []fileResult) error {
	enc := json.NewEncoder(w)
	failed := false
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
		if r.Error != "" || r.Report == nil || !r.Report.Valid {
			failed = true
		}
	}
	if failed {
		return errInvalid
	}
	return nil
}
