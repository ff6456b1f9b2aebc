package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evsizer/core/events"
	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/sizing"
	"github.com/kilianp07/evsizer/infra/logger"
	"github.com/kilianp07/evsizer/infra/workbook"
	"github.com/kilianp07/evsizer/internal/sizer"
	"github.com/kilianp07/evsizer/pkg/export"
)

var sizeOpts struct {
	request  string
	workbook string
	format   string
	output   string
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a station described by a YAML or JSON request",
	Example: `  evsizer size -r station.yaml -t reference.xlsx
  evsizer size -r station.yaml -f xlsx -o boq.xlsx`,
	RunE: runSize,
}

func init() {
	f := sizeCmd.Flags()
	f.StringVarP(&sizeOpts.request, "request", "r", "", "station request file, - for stdin")
	f.StringVarP(&sizeOpts.workbook, "workbook", "t", "", "reference workbook path or URL, overrides the configuration")
	f.StringVarP(&sizeOpts.format, "format", "f", "json", "output format: json, csv, xlsx or pdf")
	f.StringVarP(&sizeOpts.output, "output", "o", "", "output file, stdout when empty")
	_ = sizeCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(sizeCmd)
}

func runSize(cmd *cobra.Command, args []string) (err error) {
	format, err := export.ParseFormat(sizeOpts.format)
	if err != nil {
		return err
	}
	req, err := readRequest(cmd.InOrStdin(), sizeOpts.request)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	if sizeOpts.workbook != "" {
		cfg.Reference.Source = sizeOpts.workbook
	}
	table, _, err := workbook.Load(cmd.Context(), cfg.Reference)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	svc := sizer.New(sizing.NewResolver(logger.New("sizing")), table, nil)
	res, err := svc.Size(sizer.NewRequestID(), events.TransportCLI, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sizeOpts.output != "" {
		f, cerr := os.Create(sizeOpts.output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	return export.Write(out, format, res)
}

// readRequest decodes a station request. JSON documents use the API field
// names, YAML documents the snake_case ones.
func readRequest(stdin io.Reader, path string) (model.StationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.StationRequest{}, err
	}
	var req model.StationRequest
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &req)
	} else {
		err = yaml.Unmarshal(data, &req)
	}
	if err != nil {
		return model.StationRequest{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
