//go:build ignore

// Command fake-gopass simulates the subset of gopass used by passstore.
// Entries live as files under $FAKE_GOPASS_STORE.
//
//	fake-gopass <path>                show an entry
//	fake-gopass insert -m <path>      read the secret from stdin
//	fake-gopass rm -f <path>          remove an entry
//	fake-gopass jsonapi listen        answer one framed JSON request
//
// FAKE_GOPASS_MODE selects failure modes:
//
//	args          print argv as a JSON array and the stdin bytes to stdout
//	stderr        print a valid reply, then "entry not found" on stderr
//	exit-nonzero  print a valid reply and exit 3 with an empty stderr
//	stderr-blank  print a valid reply and a lone newline on stderr
//	bad-utf8      write invalid UTF-8 to stderr
//	bad-stdout    write invalid UTF-8 to stdout
//	junk-prefix   reply with 4 junk bytes instead of the real length
//	short-frame   reply with 2 bytes
//	not-json      reply with a framed non-JSON payload
//	no-echo       omit "password" from create replies
//	wrong-echo    reply to create with a different password
//	no-username   omit "username" from create replies
//	object-query  reply to query with an object
//	mixed-query   reply to query with a non-string element
//	check-frame   fail on stderr unless stdin is exactly one well-formed frame
package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var mode = os.Getenv("FAKE_GOPASS_MODE")

func main() {
	args := os.Args[1:]
	stdin, _ := io.ReadAll(os.Stdin)

	switch mode {
	case "args":
		b, _ := json.Marshal(args)
		fmt.Printf("%s\n%s", b, stdin)
		return
	case "bad-utf8":
		os.Stderr.Write([]byte{0xff, 0xfe, '\n'})
		return
	case "bad-stdout":
		os.Stdout.Write([]byte{0xff, 0xfe})
		return
	}

	var reply []byte
	if len(args) >= 2 && args[0] == "jsonapi" && args[1] == "listen" {
		reply = listen(stdin)
	} else {
		reply = invoke(args, stdin)
	}
	os.Stdout.Write(reply)

	switch mode {
	case "stderr":
		fmt.Fprint(os.Stderr, "entry not found\n")
	case "stderr-blank":
		fmt.Fprint(os.Stderr, "\n")
	case "exit-nonzero":
		os.Exit(3)
	}
}

func storeDir() string {
	if dir := os.Getenv("FAKE_GOPASS_STORE"); dir != "" {
		return dir
	}
	return os.TempDir()
}

func entryFile(name string) string {
	return filepath.Join(storeDir(), filepath.FromSlash(name)+".gpg")
}

func fail(msg string) []byte {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
	return nil
}

func invoke(args []string, stdin []byte) []byte {
	switch {
	case len(args) == 1:
		data, err := os.ReadFile(entryFile(args[0]))
		if err != nil {
			return fail("Error: entry is not in the password store")
		}
		return data
	case len(args) == 3 && args[0] == "insert" && args[1] == "-m":
		path := entryFile(args[2])
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fail(err.Error())
		}
		if err := os.WriteFile(path, stdin, 0o600); err != nil {
			return fail(err.Error())
		}
		return nil
	case len(args) == 3 && args[0] == "rm" && args[1] == "-f":
		if err := os.Remove(entryFile(args[2])); err != nil {
			return fail("Error: entry is not in the password store")
		}
		return nil
	default:
		return fail("Error: unknown command " + strings.Join(args, " "))
	}
}

func listen(stdin []byte) []byte {
	if len(stdin) < 4 {
		return fail("jsonapi: short header")
	}
	n := binary.LittleEndian.Uint32(stdin[:4])
	body := stdin[4:]
	if mode == "check-frame" && int(n) != len(body) {
		return fail(fmt.Sprintf("jsonapi: frame length %d does not match %d payload bytes", n, len(body)))
	}
	if int(n) > len(body) {
		return fail("jsonapi: truncated payload")
	}

	var req map[string]any
	if err := json.Unmarshal(body[:n], &req); err != nil {
		return fail("jsonapi: " + err.Error())
	}

	switch mode {
	case "short-frame":
		return []byte{1, 0}
	case "not-json":
		return framed([]byte("not json"))
	}

	var resp any
	switch req["type"] {
	case "getLogin":
		name, _ := req["entry"].(string)
		data, err := os.ReadFile(entryFile(name))
		if err != nil {
			return fail("Error: entry is not in the password store")
		}
		secret := strings.SplitN(string(data), "\n", 2)[0]
		resp = map[string]any{"username": filepath.Base(name), "password": secret}
	case "query":
		query, _ := req["query"].(string)
		resp = queryEntries(query)
	case "create":
		resp = create(req)
	default:
		return fail(fmt.Sprintf("jsonapi: unknown request type %v", req["type"]))
	}

	out, _ := json.Marshal(resp)
	if mode == "junk-prefix" {
		return append([]byte{0xde, 0xad, 0xbe, 0xef}, out...)
	}
	return framed(out)
}

func queryEntries(query string) any {
	switch mode {
	case "object-query":
		return map[string]any{"entries": []string{query}}
	case "mixed-query":
		return []any{query + "/user1", 42}
	}
	var names []string
	root := storeDir()
	_ = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(p, ".gpg") {
			return nil
		}
		rel, _ := filepath.Rel(root, strings.TrimSuffix(p, ".gpg"))
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, query) {
			names = append(names, rel)
		}
		return nil
	})
	sort.Strings(names)
	if names == nil {
		names = []string{}
	}
	return names
}

func create(req map[string]any) any {
	name, _ := req["entry_name"].(string)
	secret, _ := req["password"].(string)
	if gen, _ := req["generate"].(bool); gen {
		length := 16
		if l, ok := req["length"].(float64); ok {
			length = int(l)
		}
		alphabet := "abcdefghijklmnopqrstuvwxyz0123456789"
		if sym, _ := req["use_symbols"].(bool); sym {
			alphabet += "!@#$%^&*"
		}
		var b strings.Builder
		for i := 0; i < length; i++ {
			b.WriteByte(alphabet[i%len(alphabet)])
		}
		secret = b.String()
	}
	path := entryFile(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fail(err.Error())
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return fail(err.Error())
	}

	resp := map[string]any{"username": filepath.Base(name), "password": secret}
	switch mode {
	case "no-echo":
		delete(resp, "password")
	case "wrong-echo":
		resp["password"] = "different"
	case "no-username":
		delete(resp, "username")
	}
	return resp
}

func framed(payload []byte) []byte {
	buf := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(payload)))
	copy(buf[4:], payload)
	return buf
}
