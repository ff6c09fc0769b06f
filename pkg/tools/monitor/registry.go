package monitor

import (
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
)

// RegisterTools registers all monitoring tools against the given monitor.
func RegisterTools(registry *tools.Registry, m *browser.Monitor) error {
	all := []tools.Tool{
		NewOpenBrowserTool(m),
		NewGetConsoleLogsTool(m),
		NewGetNetworkRequestsTool(m),
		NewCloseBrowserTool(m),
		NewClearLogsTool(m),
		NewConfigureCaptureTool(m),
		NewGetCaptureConfigTool(m),
	}

	for _, tool := range all {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
