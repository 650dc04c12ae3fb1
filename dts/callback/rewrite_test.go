package callback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsonic/express-postprocess/dts"
	"github.com/tsonic/express-postprocess/errors"
)

const (
	routeTask   = "export type RouteHandler = (req: Request, res: Response, next: NextFunction) => Task;"
	requestTask = "export type RequestHandler = (req: Request, res: Response, next: NextFunction) => Task;"
	errorTask   = "export type ErrorRequestHandler = (err: unknown, req: Request, res: Response, next: NextFunction) => Task;"
	paramTask   = "export type ParamHandler = (req: Request, res: Response, next: NextFunction, value: string) => Task;"
	syncAlias   = "export type RequestHandlerSync = (req: Request, res: Response, next: NextFunction) => void;"
)

func parse(lines ...string) *dts.Document {
	return dts.Parse("index.d.ts", strings.Join(lines, "\n"))
}

func promised(line string) string {
	return strings.TrimSuffix(line, "Task;") + "Promise<void>;"
}

func TestRewrite_AllKnown(t *testing.T) {
	doc := parse("// header", routeTask, requestTask, syncAlias, errorTask, paramTask, "")

	report, err := Rewrite(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"RouteHandler", "RequestHandler", "ErrorRequestHandler"}, report.Rewritten)
	assert.Equal(t, []string{"ParamHandler"}, report.Skipped)
	assert.Equal(t, []int{1, 2, 4}, report.Lines)

	assert.Equal(t, []string{
		"// header",
		promised(routeTask),
		promised(requestTask),
		syncAlias,
		promised(errorTask),
		paramTask,
		"",
	}, doc.Lines())
}

func TestRewrite_NoAliasesIsNoop(t *testing.T) {
	doc := parse("// header", syncAlias, paramTask)

	report, err := Rewrite(doc)
	require.NoError(t, err)
	assert.Empty(t, report.Rewritten)
	assert.Equal(t, []string{"ParamHandler"}, report.Skipped)
	assert.False(t, doc.Changed())
}

func TestRewrite_Idempotent(t *testing.T) {
	doc := parse(routeTask, requestTask, errorTask)
	_, err := Rewrite(doc)
	require.NoError(t, err)
	first := doc.String()

	again := dts.Parse("index.d.ts", first)
	report, err := Rewrite(again)
	require.NoError(t, err)
	assert.Empty(t, report.Rewritten)
	assert.False(t, again.Changed())
}

func TestRewrite_Incomplete(t *testing.T) {
	doc := parse(routeTask, syncAlias)

	report, err := Rewrite(doc)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, ErrIncompleteRewrite))
	assert.Contains(t, err.Error(), "RequestHandler, ErrorRequestHandler")
	assert.False(t, doc.Changed(), "a failed rewrite must not modify the document")
}

func TestRewrite_PartiallyNormalizedInput(t *testing.T) {
	doc := parse(promised(routeTask), requestTask, promised(errorTask))

	report, err := Rewrite(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"RequestHandler"}, report.Rewritten)
	assert.Equal(t, []string{promised(routeTask), promised(requestTask), promised(errorTask)}, doc.Lines())
}

func TestRewrite_LineShapes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "indented declare without export",
			line: "    declare type RouteHandler = (req: Request) => Task;",
			want: "    declare type RouteHandler = (req: Request) => Promise<void>;",
		},
		{
			name: "no semicolon",
			line: "type RouteHandler = () => Task",
			want: "type RouteHandler = () => Promise<void>",
		},
		{
			name: "extra spacing kept",
			line: "export type RouteHandler=(req: Request)=>  Task ;",
			want: "export type RouteHandler=(req: Request)=>  Promise<void> ;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(tt.line, requestTask, errorTask)
			_, err := Rewrite(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Line(0))
		})
	}
}

func TestRewrite_IgnoresOtherReturnTypes(t *testing.T) {
	lines := []string{
		"export type RouteHandler = (req: Request) => Task<string>;",
		"export type RouteHandler2 = (req: Request) => TaskLike;",
		"export type RequestHandler = Task;",
	}
	doc := parse(lines...)

	report, err := Rewrite(doc)
	require.NoError(t, err)
	assert.Empty(t, report.Rewritten)
	assert.Empty(t, report.Skipped)
	assert.False(t, doc.Changed())
}

func TestIsKnown(t *testing.T) {
	for _, c := range KnownCallbacks {
		assert.True(t, IsKnown(c.String()))
	}
	assert.False(t, IsKnown("ParamHandler"))
	assert.False(t, IsKnown("RequestHandlerSync"))
}
