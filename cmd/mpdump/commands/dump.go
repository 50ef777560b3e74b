package commands

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/bolt/internal/engine/multipart"
)

// partLogEntry is one JSON line per part, the same hand-rolled structured
// logging shape middleware.LogEntry uses for HTTP requests.
type partLogEntry struct {
	Time     string `json:"time"`
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Bytes    int64  `json:"bytes"`
}

func newDumpCmd() *cobra.Command {
	var contentType string

	c := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print each part's headers and body size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			src, closer, err := openSource(path, contentType)
			if err != nil {
				return err
			}
			defer closer.Close()

			it, err := multipart.NewIterator(src, multipart.DefaultConfig())
			if err != nil {
				return err
			}

			index := 0
			for {
				part, err := it.Next()
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return err
				}

				n, err := io.Copy(io.Discard, part.Body())
				if err != nil {
					return err
				}

				entry := partLogEntry{
					Time:     time.Now().Format(time.RFC3339),
					Index:    index,
					Name:     part.Name,
					Filename: part.Filename,
					Type:     part.Type,
					Bytes:    n,
				}
				line, err := json.Marshal(entry)
				if err != nil {
					return err
				}
				cmd.Println(string(line))
				index++
			}

			stats := it.Stats()
			cmd.Printf("parts=%d bytes_read=%d preamble=%d epilogue=%d\n",
				stats.PartsYielded, stats.BytesRead, stats.PreambleLength, stats.EpilogueLength)
			return nil
		},
	}

	c.Flags().StringVarP(&contentType, "content-type", "H", "", "Content-Type header value (required, carries the boundary)")
	c.MarkFlagRequired("content-type")
	return c
}
