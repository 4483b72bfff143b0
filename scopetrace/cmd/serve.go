package cmd

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/scopetrace/tracing"
)

//go:embed viewer.html
var viewerPage []byte

var serveCmd = &cobra.Command{
	Use:   "serve [trace file]",
	Short: "Serve a trace file with a web-based viewer.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")

		doc, truncated, err := tracing.ReadTrace(args[0])
		if err != nil {
			log.Fatalf("Error reading trace: %v", err)
		}

		if truncated {
			fmt.Println("Warning: the trace is truncated; " +
				"serving the complete records only.")
		}

		r := mux.NewRouter()
		r.HandleFunc("/api/trace", serveTrace(doc))
		r.HandleFunc("/api/scopes", serveScopes(doc))
		r.PathPrefix("/").HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, err := w.Write(viewerPage)
				dieOnErr(err)
			})

		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		dieOnErr(err)

		url := fmt.Sprintf("http://localhost:%d",
			listener.Addr().(*net.TCPAddr).Port)
		fmt.Printf("Serving trace at %s\n", url)

		if open {
			err = browser.OpenURL(url)
			if err != nil {
				fmt.Printf("Failed to open browser: %v\n", err)
			}
		}

		dieOnErr(http.Serve(listener, r))
	},
}

func serveTrace(doc *tracing.TraceDocument) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		err := json.NewEncoder(w).Encode(doc)
		dieOnErr(err)
	}
}

func serveScopes(doc *tracing.TraceDocument) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		names := make(map[string]bool)
		for _, e := range doc.TraceEvents {
			names[e.Name] = true
		}

		list := make([]string, 0, len(names))
		for n := range names {
			list = append(list, n)
		}
		sort.Strings(list)

		w.Header().Set("Content-Type", "application/json")

		err := json.NewEncoder(w).Encode(list)
		dieOnErr(err)
	}
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0,
		"Port to serve on; a random port is used if 0")
	serveCmd.Flags().Bool("open", false,
		"Open the viewer in the default browser")
}
