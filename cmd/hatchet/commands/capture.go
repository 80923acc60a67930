package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sharksforarms/hatchet/datalink"
	capmetrics "github.com/sharksforarms/hatchet/internal/metrics"
	"github.com/sharksforarms/hatchet/layer"
)

// isParseError reports whether err is a per-frame decoding failure
// rather than a failure of the capture source itself.
func isParseError(err error) bool {
	return errors.Is(err, layer.ErrParse) || errors.Is(err, layer.ErrIncomplete)
}

// shutdownTimeout is the maximum time to wait for the metrics server to
// drain active connections during graceful shutdown.
const shutdownTimeout = 5 * time.Second

// captureCmd reads packets from a live interface or a pcap file and
// logs a one-line summary per packet.
func captureCmd() *cobra.Command {
	var (
		iface       string
		file        string
		filter      string
		count       int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture and decode packets from an interface or pcap file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags override the configuration file.
			if cmd.Flags().Changed("interface") {
				cfg.Capture.Interface = iface
			}
			if cmd.Flags().Changed("file") {
				cfg.Capture.File = file
			}
			if cmd.Flags().Changed("filter") {
				cfg.Capture.Filter = filter
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}

			return runCapture(cmd.Context(), count)
		},
	}

	cmd.Flags().StringVarP(&iface, "interface", "i", "", "network interface to capture from")
	cmd.Flags().StringVarP(&file, "file", "f", "", "pcap file to read instead of an interface")
	cmd.Flags().StringVar(&filter, "filter", "", "BPF filter expression (live capture only)")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "stop after this many packets (0 = unlimited)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus endpoint listen address")

	return cmd
}

func runCapture(ctx context.Context, count int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, source, cleanup, err := openSource()
	if err != nil {
		return err
	}
	defer cleanup()

	reg := prometheus.NewRegistry()
	collector := capmetrics.NewCollector(reg)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, reg)
		})
	}

	g.Go(func() error {
		defer stop()
		return captureLoop(ctx, reader, source, collector, count)
	})

	return g.Wait()
}

// openSource opens the configured capture source: a pcap file when set,
// a live interface otherwise.
func openSource() (datalink.PacketReader, string, func(), error) {
	if cfg.Capture.File != "" {
		f, err := os.Open(cfg.Capture.File)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open capture file: %w", err)
		}
		reader, err := datalink.NewPcapFileReader(f)
		if err != nil {
			f.Close()
			return nil, "", nil, err
		}
		return reader, cfg.Capture.File, func() { f.Close() }, nil
	}

	if cfg.Capture.Interface == "" {
		return nil, "", nil, errors.New("either capture.interface or capture.file must be set")
	}

	handle, err := datalink.OpenPcap(
		cfg.Capture.Interface,
		cfg.Capture.Snaplen,
		cfg.Capture.Promiscuous,
		time.Second,
	)
	if err != nil {
		return nil, "", nil, err
	}
	if cfg.Capture.Filter != "" {
		if err := handle.SetBPFFilter(cfg.Capture.Filter); err != nil {
			handle.Close()
			return nil, "", nil, err
		}
	}
	return handle, cfg.Capture.Interface, handle.Close, nil
}

// captureLoop reads, summarizes and counts packets until the count is
// reached, the source ends, or the context is canceled.
func captureLoop(
	ctx context.Context,
	reader datalink.PacketReader,
	source string,
	collector *capmetrics.Collector,
	count int,
) error {
	logger.Info("capture started", slog.String("source", source))

	seen := 0
	for {
		if ctx.Err() != nil {
			logger.Info("capture stopped", slog.Int("packets", seen))
			return nil
		}

		pkt, err := reader.ReadPacket()
		if errors.Is(err, io.EOF) {
			logger.Info("capture finished", slog.Int("packets", seen))
			return nil
		}
		if errors.Is(err, datalink.ErrReadTimeout) {
			continue
		}
		if err != nil {
			// Parse failures are per-frame; read failures end the loop.
			if isParseError(err) {
				collector.ObserveParseError(source)
				logger.Warn("unparsable frame", slog.String("error", err.Error()))
				continue
			}
			collector.ObserveReadError(source)
			return fmt.Errorf("capture from %s: %w", source, err)
		}

		data, err := pkt.Bytes()
		if err != nil {
			return err
		}
		collector.ObserveRead(source, len(data))

		seen++
		logger.Info(summarize(pkt),
			slog.Int("index", seen),
			slog.Int("bytes", len(data)),
		)

		if count > 0 && seen >= count {
			logger.Info("capture finished", slog.Int("packets", seen))
			return nil
		}
	}
}

// serveMetrics exposes the Prometheus registry over HTTP until the
// context is canceled.
func serveMetrics(ctx context.Context, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	logger.Info("metrics endpoint up",
		slog.String("addr", cfg.Metrics.Addr),
		slog.String("path", cfg.Metrics.Path),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
