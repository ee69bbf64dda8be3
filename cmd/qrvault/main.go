package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/qrvault/qrvault/internal/util"
	"github.com/qrvault/qrvault/pkg/backend"
	"github.com/qrvault/qrvault/pkg/camera"
	"github.com/qrvault/qrvault/pkg/qrcodec"
	receiverApp "github.com/qrvault/qrvault/pkg/receiver"
	senderApp "github.com/qrvault/qrvault/pkg/sender"
	"github.com/qrvault/qrvault/pkg/ui"
	"github.com/qrvault/qrvault/pkg/vault"
)

func main() {
	f, _ := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))

	var vaultPath string
	cmd := &cobra.Command{
		Use:   "qrvault",
		Short: "Move vault entries between devices with QR codes",
	}

	cmd.PersistentFlags().StringVar(&vaultPath, "vault", "vault.json", "Path to the vault file")

	var exportPath string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Show selected entries as an animated QR sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := vault.Open(vaultPath)
			if err != nil {
				return fmt.Errorf("could not open vault: %w", err)
			}

			app := senderApp.NewApp(store, backend.NewCryptoBackend(store), qrcodec.New(), senderApp.NopDeterrent{})
			model := ui.InitialModel(ui.Sender, app, ui.Options{ExportPath: exportPath})
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("alas, there's been an error: %w", err)
			}
			return nil
		},
	}
	sendCmd.Flags().StringVar(&exportPath, "export", "", "Enable saving the transfer to this file with 'e'")

	var framesDir string
	var transferFile string
	receiveCmd := &cobra.Command{
		Use:   "receive",
		Short: "Scan QR frames and import the entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := vault.Open(vaultPath)
			if err != nil {
				return fmt.Errorf("could not open vault: %w", err)
			}

			exists, isDir, err := util.CheckDirectory(framesDir)
			if err != nil {
				return fmt.Errorf("could not check frames directory: %w", err)
			}
			if !exists || !isDir {
				return fmt.Errorf("frames directory %q does not exist", framesDir)
			}

			cam := camera.NewDirSource(framesDir, receiverApp.DefaultSampleInterval)
			app := receiverApp.NewApp(backend.NewCryptoBackend(store), qrcodec.New(), cam)
			model := ui.InitialModel(ui.Receiver, app, ui.Options{FilePath: transferFile})
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("alas, there's been an error: %w", err)
			}
			return nil
		},
	}
	receiveCmd.Flags().StringVar(&framesDir, "frames-dir", "frames", "Directory watched for captured QR frame images")
	receiveCmd.Flags().StringVar(&transferFile, "file", "", "Enable importing from this transfer file with ctrl+f")

	cmd.AddCommand(sendCmd)
	cmd.AddCommand(receiveCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}
