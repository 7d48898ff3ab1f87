package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	jsonstream "github.com/flitsinc/go-jsonstream"
	"github.com/flitsinc/go-jsonstream/fragment"
	"github.com/flitsinc/go-jsonstream/jsonpath"
)

func init() {
	// Put FRAGMENT_SIZE/FRAGMENT_DELAY_MS in .env and this will load them.
	godotenv.Overload()
}

func main() {
	if len(os.Args) < 3 {
		printUsage()
		return
	}

	doc, err := readDocument(os.Args[1])
	if err != nil {
		fmt.Println("Error reading document:", err)
		return
	}

	subs, err := parseSubscriptions(os.Args[2:])
	if err != nil {
		fmt.Println("Error:", err)
		printUsage()
		return
	}

	size := fragmentSize()
	delay := fragmentDelay()
	slicer := fragment.NewSlicer(doc, fragment.FixedSize(size), delay)
	defer slicer.Close()

	ctx := context.Background()
	controller := jsonstream.Open(ctx, slicer, jsonstream.DefaultOptions())

	var wg sync.WaitGroup
	for _, sub := range subs {
		handle, err := controller.Get(sub.path, sub.kind)
		if err != nil {
			fmt.Printf("Error subscribing to %q: %v\n", sub.path, err)
			continue
		}
		wg.Add(1)
		go func(sub subscription, h *jsonstream.Handle) {
			defer wg.Done()
			for chunk := range h.IterBuffered(ctx) {
				fmt.Printf("[%s] %v\n", sub.path, chunk)
			}
			final, err := h.Await(ctx)
			if err != nil {
				fmt.Printf("[%s] error: %v\n", sub.path, err)
				return
			}
			fmt.Printf("[%s] final: %v\n", sub.path, final)
		}(sub, handle)
	}

	wg.Wait()
	if err := controller.Wait(); err != nil {
		fmt.Println("Parse ended with error:", err)
	}
}

type subscription struct {
	path jsonpath.Path
	kind jsonpath.Kind
}

func parseSubscriptions(args []string) ([]subscription, error) {
	subs := make([]subscription, 0, len(args))
	for _, arg := range args {
		path, kindStr, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("subscription %q must be PATH:KIND", arg)
		}
		kind, err := parseKind(kindStr)
		if err != nil {
			return nil, err
		}
		subs = append(subs, subscription{path: jsonpath.Path(path), kind: kind})
	}
	return subs, nil
}

func parseKind(s string) (jsonpath.Kind, error) {
	switch s {
	case "string":
		return jsonpath.KindString, nil
	case "number":
		return jsonpath.KindNumber, nil
	case "boolean":
		return jsonpath.KindBoolean, nil
	case "null":
		return jsonpath.KindNull, nil
	case "object":
		return jsonpath.KindObject, nil
	case "array":
		return jsonpath.KindArray, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

func readDocument(source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(source)
	return string(data), err
}

func fragmentSize() int {
	if v := os.Getenv("FRAGMENT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 16
}

func fragmentDelay() time.Duration {
	if v := os.Getenv("FRAGMENT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage: jsonstream-demo <file|-> <path:kind> [<path:kind> ...]")
	fmt.Println()
	fmt.Println("Kinds: string, number, boolean, null, object, array")
	fmt.Println("Path \"\" addresses the document root.")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println(`  jsonstream-demo doc.json name:string "users[0].age:number"`)
}
