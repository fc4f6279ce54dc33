package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainya/gazette/internal/server"
	"github.com/nainya/gazette/pkg/document"
	"github.com/nainya/gazette/pkg/listing"
	"github.com/nainya/gazette/pkg/source"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the collection once and print one page of the listing",
		Long: `Fetch the collection once and print one page of the listing.

Example:
  gazette list --q orçamento
  gazette list --tab DECRETO --from 2024-06-01 --page 1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			client := source.NewClient(cfg.Source.ClientConfig(), server.NewSourceObserver(log, nil))

			flags := cmd.Flags()
			q := url.Values{}
			for _, name := range []string{listing.ParamSearch, listing.ParamFrom, listing.ParamTo, listing.ParamTab} {
				if v, _ := flags.GetString(name); v != "" {
					q.Set(name, v)
				}
			}
			page, _ := flags.GetInt(listing.ParamPage)
			q.Set(listing.ParamPage, strconv.Itoa(page))

			view := listing.Build(client.Fetch(cmd.Context()), listing.FromQuery(q))

			if asJSON, _ := flags.GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(server.NewListResponse(view))
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().String(listing.ParamSearch, "", "Search title, description or number")
	cmd.Flags().String(listing.ParamFrom, "", "Earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String(listing.ParamTo, "", "Latest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String(listing.ParamTab, "ALL", "Document type: ALL, PORTARIA, LEI_ORDINARIA, LEI_COMPLEMENTAR, DECRETO")
	cmd.Flags().Int(listing.ParamPage, 1, "Page number")
	cmd.Flags().Bool("json", false, "Print the page as JSON")

	return cmd
}

func printView(w io.Writer, v listing.View) {
	fmt.Fprintf(w, "Total de Documentos: %d\n", v.Total)
	fmt.Fprintf(w, "Documentos Filtrados: %d\n", v.Filtered)
	for _, t := range document.Types {
		fmt.Fprintf(w, "  %-20s %d\n", t.Label(), v.ByType[t])
	}
	fmt.Fprintf(w, "Aba: %s\n\n", v.State.Tab.Label())

	if v.Empty() {
		fmt.Fprintln(w, server.EmptyMessage)
		return
	}

	for _, d := range v.Items {
		fmt.Fprintln(w, listing.DisplayTitle(d))
		fmt.Fprintf(w, "  Número do documento: %s\n", d.Number)
		if d.Description != "" {
			fmt.Fprintf(w, "  %s\n", d.Description)
		}
		fmt.Fprintf(w, "  PDF: %s\n", document.PDFPath(d.Filename()))
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
	fmt.Fprintf(w, "Página %d de %d (%d por página)\n", v.Page(), v.TotalPages, v.ItemsPerPage)
}
