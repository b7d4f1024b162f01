//go:build unit

package cmd

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"onbox-config-copy/internal/adapter/infrastructure/file"
	"onbox-config-copy/internal/mock"
	"onbox-config-copy/internal/types"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const startupText = `! Command: show startup-config
! Startup-config last modified at  Sat Apr  4 12:00:00 2020 by admin
! device: SW1 (DCS-7050TX-64, EOS-4.23.2F)
!
! boot system flash:/EOS-4.23.2F.swi
!
hostname SW1
!
spanning-tree mode mstp
!
interface Management1
   ip address 10.0.0.5/24
!
event-handler CONFIG-BACKUP
   trigger on-startup-config
   action bash /mnt/flash/onbox-config-copy -d 127.0.0.1 -t switch
   delay 5
!
end
`

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		Version int      `json:"version"`
		Cmds    []string `json:"cmds"`
		Format  string   `json:"format"`
	} `json:"params"`
	ID string `json:"id"`
}

// fakeEAPI records every runCmds batch and answers with reply.
type fakeEAPI struct {
	mu      sync.Mutex
	batches [][]string
	reply   func(cmd string) map[string]interface{}
}

func (f *fakeEAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.batches = append(f.batches, req.Params.Cmds)
	f.mu.Unlock()

	result := make([]map[string]interface{}, 0, len(req.Params.Cmds))
	for _, cmd := range req.Params.Cmds {
		if f.reply != nil {
			result = append(result, f.reply(cmd))
		} else {
			result = append(result, map[string]interface{}{})
		}
	}
	out, _ := json.Marshal(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": result})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}

func (f *fakeEAPI) Batches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches
}

func localReply(cmd string) map[string]interface{} {
	switch cmd {
	case "show startup-config":
		return map[string]interface{}{"output": startupText}
	case "show hostname":
		return map[string]interface{}{"hostname": "SW1", "fqdn": "SW1.example.net"}
	case "show interfaces Management1":
		return map[string]interface{}{
			"interfaces": map[string]interface{}{
				"Management1": map[string]interface{}{
					"name": "Management1",
					"interfaceAddress": []interface{}{
						map[string]interface{}{
							"primaryIp": map[string]interface{}{"address": "10.0.0.5", "maskLen": 24},
						},
					},
				},
			},
		}
	}
	return map[string]interface{}{}
}

type environment struct {
	local   *fakeEAPI
	remote  *fakeEAPI
	host    string
	fileMgr *file.ManagerAdapter
	path    string
}

func newEnvironment(t *testing.T) *environment {
	socketPath := filepath.Join(t.TempDir(), "command-api.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	local := &fakeEAPI{reply: localReply}
	localServer := &http.Server{Handler: local}
	go func() { _ = localServer.Serve(listener) }()
	t.Cleanup(func() { _ = localServer.Close() })

	remote := &fakeEAPI{}
	remoteServer := httptest.NewTLSServer(remote)
	t.Cleanup(remoteServer.Close)

	host, port, err := net.SplitHostPort(remoteServer.Listener.Addr().String())
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	path := "/mnt/flash/config-copy.yml"
	configYAML := `logging:
  level: debug
  format: compact
  syslog:
    enabled: false
credentials:
  username: admin
  password: arista
timeout: 2s
local:
  socket: ` + socketPath + `
remote:
  scheme: https
  port: ` + port + `
  path: /command-api
  insecure_skip_verify: true
`
	require.NoError(t, afero.WriteFile(fs, path, []byte(configYAML), 0o644))

	return &environment{
		local:   local,
		remote:  remote,
		host:    host,
		fileMgr: file.NewManagerAdapterWithFs(fs),
		path:    path,
	}
}

func (e *environment) run(kind string) error {
	return runCopy(context.Background(), copyOptions{
		destination:    e.host,
		kind:           kind,
		configPath:     e.path,
		explicitConfig: true,
	}, e.fileMgr)
}

func TestRunCopy_Switch(t *testing.T) {
	env := newEnvironment(t)

	require.NoError(t, env.run("switch"))

	local := env.local.Batches()
	require.Len(t, local, 3)
	assert.Equal(t, []string{"enable", "show startup-config"}, local[0])
	assert.Equal(t, []string{"show hostname"}, local[1])
	assert.Equal(t, []string{"show interfaces Management1"}, local[2])

	remote := env.remote.Batches()
	require.Len(t, remote, 1)
	assert.Equal(t, []string{
		"enable",
		"configure",
		"hostname SW1-backup",
		"!",
		"spanning-tree mode mstp",
		"!",
		"interface Management1",
		"   ip address " + env.host + "/24",
		"!",
	}, remote[0])

	for _, line := range remote[0] {
		assert.False(t, strings.HasPrefix(line, "event-handler CONFIG-BACKUP"))
		assert.NotEqual(t, "end", line)
	}
}

func TestRunCopy_TypeMustMatchExactly(t *testing.T) {
	for _, kind := range []string{"Switch", "SWITCH", " server "} {
		t.Run(kind, func(t *testing.T) {
			env := newEnvironment(t)

			err := env.run(kind)
			assert.ErrorIs(t, err, types.ErrInvalidKind)
			assert.Empty(t, env.local.Batches())
			assert.Empty(t, env.remote.Batches())
		})
	}
}

func TestRunCopy_Server(t *testing.T) {
	env := newEnvironment(t)

	err := env.run("server")
	assert.ErrorIs(t, err, types.ErrNotSupported)
	assert.Empty(t, env.local.Batches())
	assert.Empty(t, env.remote.Batches())
}

func TestRunCopy_InvalidType(t *testing.T) {
	env := newEnvironment(t)

	err := env.run("router")
	assert.ErrorIs(t, err, types.ErrInvalidKind)
	assert.Empty(t, env.local.Batches())
	assert.Empty(t, env.remote.Batches())
}

func TestRunCopy_ConfigErrors(t *testing.T) {
	fileMgr := file.NewManagerAdapterWithFs(afero.NewMemMapFs())

	t.Run("MissingExplicitFile", func(t *testing.T) {
		err := runCopy(context.Background(), copyOptions{
			destination:    "10.0.0.9",
			kind:           "switch",
			configPath:     "/mnt/flash/missing.yml",
			explicitConfig: true,
		}, fileMgr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config error")
	})

	t.Run("DefaultsWithoutCredentials", func(t *testing.T) {
		t.Setenv("CONFIG_COPY_USERNAME", "")
		t.Setenv("CONFIG_COPY_PASSWORD", "")

		err := runCopy(context.Background(), copyOptions{
			destination: "10.0.0.9",
			kind:        "switch",
			configPath:  "/mnt/flash/missing.yml",
		}, fileMgr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config validation error")
	})
}

func TestRootCommand_RequiredFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"-d", "10.0.0.9"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "type" not set`)
}

func TestRunCopy_ConfigLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fileMgr := mock.NewMockFileManager(ctrl)
	ctx := context.Background()

	t.Run("ExplicitFileUnreadable", func(t *testing.T) {
		fileMgr.EXPECT().
			ReadFile("/mnt/flash/custom.yml").
			Return(nil, errors.New("permission denied"))

		err := runCopy(ctx, copyOptions{
			destination:    "10.0.0.9",
			kind:           "switch",
			configPath:     "/mnt/flash/custom.yml",
			explicitConfig: true,
		}, fileMgr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config error")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		fileMgr.EXPECT().FileExists("/mnt/flash/config-copy.yml").Return(true)
		fileMgr.EXPECT().
			ReadFile("/mnt/flash/config-copy.yml").
			Return([]byte("timeout: [\n"), nil)

		err := runCopy(ctx, copyOptions{
			destination: "10.0.0.9",
			kind:        "switch",
			configPath:  "/mnt/flash/config-copy.yml",
		}, fileMgr)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("DefaultFileAbsent", func(t *testing.T) {
		fileMgr.EXPECT().FileExists("/mnt/flash/config-copy.yml").Return(false)

		err := runCopy(ctx, copyOptions{
			destination: "10.0.0.9",
			kind:        "router",
			configPath:  "/mnt/flash/config-copy.yml",
		}, fileMgr)
		assert.ErrorIs(t, err, types.ErrInvalidKind)
	})

	t.Run("ServerFromFile", func(t *testing.T) {
		fileMgr.EXPECT().FileExists("/mnt/flash/config-copy.yml").Return(true)
		fileMgr.EXPECT().
			ReadFile("/mnt/flash/config-copy.yml").
			Return([]byte("logging:\n  syslog:\n    enabled: false\n"), nil)

		err := runCopy(ctx, copyOptions{
			destination: "10.0.0.50",
			kind:        "server",
			configPath:  "/mnt/flash/config-copy.yml",
		}, fileMgr)
		assert.ErrorIs(t, err, types.ErrNotSupported)
	})
}

func TestExecuteCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	copier := mock.NewMockConfigCopier(ctrl)
	destination := types.Destination{Address: "10.0.0.9", Kind: types.KindSwitch}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		copier.EXPECT().Destination().Return(destination)
		copier.EXPECT().Copy(ctx).Return(nil)

		assert.NoError(t, executeCopy(ctx, copier))
	})

	t.Run("NotSupported", func(t *testing.T) {
		copier.EXPECT().Destination().Return(destination)
		copier.EXPECT().Copy(ctx).Return(types.ErrNotSupported)

		assert.ErrorIs(t, executeCopy(ctx, copier), types.ErrNotSupported)
	})

	t.Run("CopyFailure", func(t *testing.T) {
		want := errors.New("failed to push configuration to 10.0.0.9: connection refused")
		copier.EXPECT().Destination().Return(destination)
		copier.EXPECT().Copy(ctx).Return(want)

		assert.Equal(t, want, executeCopy(ctx, copier))
	})
}
