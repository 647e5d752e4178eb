package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	source := flag.String("source", "hh", "vacancy source: hh or sj")
	keyword := flag.String("keyword", "golang", "search keyword")
	count := flag.Int("count", 10, "vacancies to request")
	needle := flag.String("filter", "go", "requirement keyword to filter by")
	out := flag.String("out", filepath.Join(os.TempDir(), "vacancies.json"), "vacancy file to save into")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "vacancy-scanner-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testSources(ctx, session)

	vacancies := testSearch(ctx, session, *source, *keyword, *count)
	if vacancies == nil {
		return
	}
	testSort(ctx, session, vacancies)
	testFilter(ctx, session, vacancies, *needle)
	testSaveLoad(ctx, session, vacancies, *out)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testSources(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: vacancy_sources")
	if res := callTool(ctx, session, "vacancy_sources", map[string]any{}); res != nil {
		printResult(res)
	}
}

// testSearch returns the structured vacancy list for the follow-up tests
func testSearch(ctx context.Context, session *mcp.ClientSession, source, keyword string, count int) any {
	fmt.Println("\nTEST: vacancy_search")

	res := callTool(ctx, session, "vacancy_search", map[string]any{
		"source":  source,
		"keyword": keyword,
		"count":   count,
	})
	if res == nil {
		return nil
	}
	printResult(res)

	structured, ok := res.StructuredContent.(map[string]any)
	if !ok {
		log.Printf("vacancy_search: no structured content")
		return nil
	}
	return structured["vacancies"]
}

func testSort(ctx context.Context, session *mcp.ClientSession, vacancies any) {
	fmt.Println("\nTEST: vacancy_sort (salary)")
	if res := callTool(ctx, session, "vacancy_sort", map[string]any{"vacancies": vacancies}); res != nil {
		printResult(res)
	}

	fmt.Println("\nTEST: vacancy_sort (date, top 3)")
	if res := callTool(ctx, session, "vacancy_sort", map[string]any{"vacancies": vacancies, "order": "date", "limit": 3}); res != nil {
		printResult(res)
	}
}

func testFilter(ctx context.Context, session *mcp.ClientSession, vacancies any, needle string) {
	fmt.Println("\nTEST: vacancy_filter")
	if res := callTool(ctx, session, "vacancy_filter", map[string]any{"vacancies": vacancies, "keyword": needle}); res != nil {
		printResult(res)
	}
}

func testSaveLoad(ctx context.Context, session *mcp.ClientSession, vacancies any, path string) {
	fmt.Println("\nTEST: vacancy_save (twice, no duplicates expected)")
	for range 2 {
		if res := callTool(ctx, session, "vacancy_save", map[string]any{"path": path, "vacancies": vacancies}); res != nil {
			printResult(res)
		}
	}

	fmt.Println("\nTEST: vacancy_load")
	if res := callTool(ctx, session, "vacancy_load", map[string]any{"path": path}); res != nil {
		printResult(res)
	}
}

func callTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return nil
	}
	if res.IsError {
		log.Printf("%s returned a tool error", name)
		printResult(res)
		return nil
	}
	return res
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
