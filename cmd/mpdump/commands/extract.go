package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/bolt/internal/engine/multipart"
)

func newExtractCmd() *cobra.Command {
	var contentType, name, out string

	c := &cobra.Command{
		Use:   "extract [file]",
		Short: "Write one part's body to a file",
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

			for {
				part, err := it.Next()
				if err != nil {
					if errors.Is(err, io.EOF) {
						return fmt.Errorf("no part named %q found", name)
					}
					return err
				}
				if part.Name != name {
					continue
				}

				dst, err := os.Create(out)
				if err != nil {
					return err
				}
				defer dst.Close()

				n, err := io.Copy(dst, part.Body())
				if err != nil {
					return err
				}
				cmd.Printf("wrote %d bytes to %s\n", n, out)
				return nil
			}
		},
	}

	c.Flags().StringVarP(&contentType, "content-type", "H", "", "Content-Type header value (required, carries the boundary)")
	c.Flags().StringVar(&name, "name", "", "content-disposition name of the part to extract (required)")
	c.Flags().StringVar(&out, "out", "", "file to write the part's body to (required)")
	c.MarkFlagRequired("content-type")
	c.MarkFlagRequired("name")
	c.MarkFlagRequired("out")
	return c
}
