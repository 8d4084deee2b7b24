package forge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/gav"
)

func TestResolveTokenGAV(t *testing.T) {
	got, err := resolveToken("[net.minecraftforge:forge:1.20.1-47.2.0:universal]", "/libs", "/extracted")
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}
	want := filepath.Join("/libs", "net", "minecraftforge", "forge", "1.20.1-47.2.0", "forge-1.20.1-47.2.0-universal.jar")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveTokenLiteral(t *testing.T) {
	got, err := resolveToken("'some value'", "/libs", "/extracted")
	if err != nil || got != "some value" {
		t.Fatalf("got (%q, %v), want (some value, nil)", got, err)
	}
}

func TestResolveTokenArchivePath(t *testing.T) {
	got, err := resolveToken("/data/client.lzma", "/libs", "/extracted")
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}
	want := filepath.Join("/extracted", "data", "client.lzma")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveTokenInvalidGAVFails(t *testing.T) {
	if _, err := resolveToken("[not a gav]", "/libs", "/extracted"); err == nil {
		t.Error("expected an invalid bracketed GAV to error")
	}
}

func TestResolveArgDataLookup(t *testing.T) {
	data := map[string]sidedValue{"MAPPINGS": {Client: "'/data/client.srg'", Server: "'/data/server.srg'"}}
	got, err := resolveArg("{MAPPINGS}", data, "client", "/libs", "/extracted")
	if err != nil || got != "/data/client.srg" {
		t.Fatalf("got (%q, %v), want (/data/client.srg, nil)", got, err)
	}
	got, err = resolveArg("{MAPPINGS}", data, "server", "/libs", "/extracted")
	if err != nil || got != "/data/server.srg" {
		t.Fatalf("server side: got (%q, %v), want (/data/server.srg, nil)", got, err)
	}
}

func TestResolveArgUnknownKeyFails(t *testing.T) {
	if _, err := resolveArg("{MISSING}", map[string]sidedValue{}, "client", "/libs", "/extracted"); err == nil {
		t.Error("expected an unresolvable data key to error")
	}
}

func TestResolveArgPlainPassthrough(t *testing.T) {
	got, err := resolveArg("--task", map[string]sidedValue{}, "client", "/libs", "/extracted")
	if err != nil || got != filepath.Join("/extracted", "--task") {
		t.Fatalf("got (%q, %v)", got, err)
	}
}

func TestResolveOutputSha1DataLookup(t *testing.T) {
	data := map[string]sidedValue{"MAPPINGS": {Client: "'abc123'", Server: "'def456'"}}
	if got := resolveOutputSha1("{MAPPINGS}", data, "client"); got != "abc123" {
		t.Errorf("got %q, want abc123", got)
	}
	if got := resolveOutputSha1("{MAPPINGS}", data, "server"); got != "def456" {
		t.Errorf("got %q, want def456", got)
	}
}

func TestResolveOutputSha1Literal(t *testing.T) {
	if got := resolveOutputSha1("da39a3ee5e6b4b0d3255bfef95601890afd80709", nil, "client"); got != "da39a3ee5e6b4b0d3255bfef95601890afd80709" {
		t.Errorf("got %q", got)
	}
}

func TestAppliesToSide(t *testing.T) {
	if !appliesToSide(nil, "client") {
		t.Error("expected no Sides restriction to apply to every side")
	}
	if !appliesToSide([]string{"client", "server"}, "server") {
		t.Error("expected a listed side to apply")
	}
	if appliesToSide([]string{"server"}, "client") {
		t.Error("expected an unlisted side not to apply")
	}
}

func TestDescribeTaskKnownTools(t *testing.T) {
	jarsplitter, err := gav.Parse("net.minecraftforge:jarsplitter:1.1.0")
	if err != nil {
		t.Fatalf("gav.Parse: %v", err)
	}
	if got := describeTask(jarsplitter, nil); got != "Splitting client with mappings" {
		t.Errorf("got %q", got)
	}

	installertools, err := gav.Parse("net.minecraftforge:installertools:1.3.0")
	if err != nil {
		t.Fatalf("gav.Parse: %v", err)
	}
	if got := describeTask(installertools, []string{"--task", "MCP_DATA"}); got != "Generating MCP data" {
		t.Errorf("got %q", got)
	}

	neoART, err := gav.Parse("net.neoforged:AutoRenamingTool:1.0.0")
	if err != nil {
		t.Fatalf("gav.Parse: %v", err)
	}
	if got := describeTask(neoART, nil); got != "Renaming client with mappings (NeoForge)" {
		t.Errorf("got %q", got)
	}
}

func TestDescribeTaskUnknownFallsBackToGAVString(t *testing.T) {
	unknown, err := gav.Parse("com.example:mystery-tool:1.0.0")
	if err != nil {
		t.Fatalf("gav.Parse: %v", err)
	}
	if got := describeTask(unknown, nil); got != unknown.String() {
		t.Errorf("got %q, want %q", got, unknown.String())
	}
}

func TestRunOneProcessorSkipsWhenOutputsAlreadyVerify(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output.bin")
	if err := os.WriteFile(outPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// A bare outputs path names a file inside the extracted tree, which is dir here.
	proc := processorSpec{
		Jar:     "net.minecraftforge:doesnotexist:1.0.0",
		Outputs: map[string]string{"/output.bin": "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
	}
	var emitted []events.Event
	err := runOneProcessor(context.Background(), "java", dir, dir, nil, proc, "client", func(e events.Event) { emitted = append(emitted, e) })
	if err != nil {
		t.Fatalf("expected the processor to be skipped entirely, got %v", err)
	}
	if len(emitted) != 0 {
		t.Errorf("expected no RunInstallerProcessor event when outputs already verify, got %d", len(emitted))
	}
}

func TestRunOneProcessorMissingDependencyFails(t *testing.T) {
	dir := t.TempDir()
	proc := processorSpec{
		Jar:       "net.minecraftforge:doesnotexist:1.0.0",
		Classpath: []string{"net.minecraftforge:alsomissing:1.0.0"},
	}
	err := runOneProcessor(context.Background(), "java", dir, dir, nil, proc, "client", func(events.Event) {})
	if err == nil {
		t.Error("expected a missing classpath dependency to error")
	}
}

func TestRunOneProcessorInvalidJarGAVFails(t *testing.T) {
	dir := t.TempDir()
	proc := processorSpec{Jar: "not a gav"}
	err := runOneProcessor(context.Background(), "java", dir, dir, nil, proc, "client", func(events.Event) {})
	if err == nil {
		t.Error("expected an unparsable processor jar coordinate to error")
	}
}

func TestRunProcessorsSkipsNonMatchingSide(t *testing.T) {
	p := installProfile{processors: []processorSpec{{Sides: []string{"server"}, Jar: "net.minecraftforge:x:1.0.0"}}}
	calls := 0
	err := runProcessors(context.Background(), "java", t.TempDir(), t.TempDir(), p, "client", func(events.Event) { calls++ })
	if err != nil {
		t.Fatalf("runProcessors: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected the server-only processor to be skipped for the client side, got %d emits", calls)
	}
}
