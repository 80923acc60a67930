package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharksforarms/hatchet/datalink"
)

// rewriteCmd reads a pcap file, finalizes every packet (recomputing
// lengths and checksums), and writes the result to a new pcap file.
// Useful after editing captures or to repair checksums mangled by
// hardware offload.
func rewriteCmd() *cobra.Command {
	var (
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Recompute lengths and checksums across a pcap file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRewrite(inPath, outPath)
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input pcap file")
	cmd.Flags().StringVar(&outPath, "out", "", "output pcap file")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}

func runRewrite(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	reader, err := datalink.NewPcapFileReader(in)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer, err := datalink.NewPcapFileWriter(out)
	if err != nil {
		return err
	}

	count := 0
	for {
		pkt, err := reader.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("packet %d: %w", count, err)
		}

		if err := pkt.Finalize(); err != nil {
			return fmt.Errorf("finalize packet %d: %w", count, err)
		}
		if err := writer.WritePacket(pkt); err != nil {
			return fmt.Errorf("write packet %d: %w", count, err)
		}
		count++
	}

	logger.Info("rewrite finished",
		slog.String("in", inPath),
		slog.String("out", outPath),
		slog.Int("packets", count),
	)
	return nil
}
