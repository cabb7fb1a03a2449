package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lestrrat-go/dax"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/script"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string, options ...dax.ParseOption) *node.Document {
	t.Helper()
	doc, err := dax.Parse(context.Background(), []byte(src), options...)
	require.NoError(t, err)
	return doc
}

func TestLoop(t *testing.T) {
	l := script.NewLoop()
	var got []string
	l.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	l.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	cancel := l.AfterFunc(15*time.Millisecond, func() { got = append(got, "x") })
	l.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	cancel()
	require.Equal(t, 3, l.Len())

	l.Advance(10 * time.Millisecond)
	require.Equal(t, []string{"a"}, got)
	l.Advance(10 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, got, "same due time runs in scheduling order")
	require.Equal(t, 20*time.Millisecond, l.Now())
	require.Zero(t, l.Len())

	t.Run("Run", func(t *testing.T) {
		l := script.NewLoop()
		var ran bool
		l.AfterFunc(time.Millisecond, func() { ran = true })
		require.NoError(t, l.Run(context.Background()))
		require.True(t, ran)
	})

	t.Run("RunCanceled", func(t *testing.T) {
		l := script.NewLoop()
		l.AfterFunc(time.Hour, func() {})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, l.Run(ctx), context.DeadlineExceeded)
	})
}

func TestTimer(t *testing.T) {
	t.Run("OneShot", func(t *testing.T) {
		l := script.NewLoop()
		timer := script.NewTimer(l, 100, -1, nil)
		var fired int
		timer.AddEventListener(event.Timer, event.ListenerFunc(func(ev *event.Event) {
			require.Equal(t, event.Timer, ev.Type)
			require.Equal(t, timer, ev.Target)
			fired++
		}), false)

		timer.Start()
		require.True(t, timer.Running())
		l.Advance(99 * time.Millisecond)
		require.Zero(t, fired)
		l.Advance(time.Millisecond)
		require.Equal(t, 1, fired)
		require.False(t, timer.Running())
		l.Advance(time.Second)
		require.Equal(t, 1, fired)
	})

	t.Run("Repeat", func(t *testing.T) {
		l := script.NewLoop()
		timer := script.NewTimer(l, 10, 5, nil)
		var fired int
		timer.AddEventListener(event.Timer, event.ListenerFunc(func(*event.Event) {
			fired++
			if fired == 3 {
				timer.Stop()
			}
		}), false)

		timer.Start()
		timer.Start()
		l.Advance(10 * time.Millisecond)
		require.Equal(t, 1, fired)
		l.Advance(5 * time.Millisecond)
		require.Equal(t, 2, fired)
		l.Advance(time.Second)
		require.Equal(t, 3, fired, "stopped from inside the listener")
		require.False(t, timer.Running())
		require.Zero(t, l.Len())
	})

	t.Run("ZeroRepeat", func(t *testing.T) {
		l := script.NewLoop()
		timer := script.NewTimer(l, 0, 0, nil)
		var fired int
		timer.AddEventListener(event.Timer, event.ListenerFunc(func(*event.Event) {
			fired++
		}), false)
		timer.Start()

		l.Advance(10 * time.Millisecond)
		require.Equal(t, 1, fired, "a zero interval fires once per turn")
		require.True(t, timer.Running())
		require.Equal(t, 1, l.Len())

		for range 3 {
			l.Advance(0)
		}
		require.Equal(t, 4, fired)

		timer.Stop()
		l.Advance(time.Second)
		require.Equal(t, 4, fired)
		require.Zero(t, l.Len())
	})

	t.Run("ZeroRepeatOrdering", func(t *testing.T) {
		l := script.NewLoop()
		var got []string
		timer := script.NewTimer(l, 0, 0, nil)
		timer.AddEventListener(event.Timer, event.ListenerFunc(func(*event.Event) {
			got = append(got, "tick")
		}), false)
		timer.Start()
		l.AfterFunc(5*time.Millisecond, func() { got = append(got, "later") })

		l.Advance(10 * time.Millisecond)
		require.Equal(t, []string{"tick"}, got, "the turn ends before later calls run")
		l.Advance(0)
		require.Equal(t, []string{"tick", "tick", "later"}, got)
		timer.Stop()
	})

	t.Run("ZeroRepeatRun", func(t *testing.T) {
		l := script.NewLoop()
		timer := script.NewTimer(l, 0, 0, nil)
		var fired int
		timer.AddEventListener(event.Timer, event.ListenerFunc(func(*event.Event) {
			fired++
		}), false)
		timer.Start()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, l.Run(ctx), context.DeadlineExceeded)
		require.Positive(t, fired)
	})
}

func TestEngine(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		doc := parse(t, `<svg id="root"><rect id="r" width="5"/></svg>`)
		e := script.New(doc)

		v, err := e.RunString(context.Background(), `document.documentElement.id + ":" + document.getElementById("r").getAttribute("width")`)
		require.NoError(t, err)
		require.Equal(t, "root:5", v.String())

		_, err = e.RunString(context.Background(), `document.getElementById("r").setAttribute("width", "7")`)
		require.NoError(t, err)
		require.Equal(t, 7.0, doc.ElementByID("r").Data().(*node.Rect).Width)

		v, err = e.RunString(context.Background(), `document.getElementById("nope") === null && document.getElementById("r") === document.getElementById("r")`)
		require.NoError(t, err)
		require.True(t, v.ToBoolean())
	})

	t.Run("Listener", func(t *testing.T) {
		doc := parse(t, `<svg><rect id="r"/></svg>`)
		e := script.New(doc)
		_, err := e.RunString(context.Background(), `
var clicks = 0;
function onClick(evt) { clicks++; evt.preventDefault(); }
document.getElementById("r").addEventListener("click", onClick, false);
`)
		require.NoError(t, err)

		r := doc.ElementByID("r")
		ok := r.DispatchEvent(event.NewMouse(event.Click, event.Mouse{ClientX: 1}))
		require.False(t, ok, "the listener prevented the default")
		require.Equal(t, int64(1), e.Runtime().Get("clicks").ToInteger())

		_, err = e.RunString(context.Background(), `document.getElementById("r").removeEventListener("click", onClick, false)`)
		require.NoError(t, err)
		require.False(t, r.HasEventListeners(event.Click))
	})

	t.Run("Timer", func(t *testing.T) {
		doc := parse(t, `<svg><rect id="r" width="0"/></svg>`)
		loop := script.NewLoop()
		e := script.New(doc, script.WithScheduler(loop))
		_, err := e.RunString(context.Background(), `
var t = createTimer(100, 50);
var n = 0;
t.addEventListener("SVGTimer", function(evt) {
	n++;
	document.getElementById("r").setAttribute("width", String(n));
	if (n == 3) { evt.target.stop(); }
}, false);
t.start();
`)
		require.NoError(t, err)

		loop.Advance(100 * time.Millisecond)
		require.Equal(t, 1.0, doc.ElementByID("r").Data().(*node.Rect).Width)
		loop.Advance(time.Second)
		require.Equal(t, 3.0, doc.ElementByID("r").Data().(*node.Rect).Width)

		v, err := e.RunString(context.Background(), `t.running`)
		require.NoError(t, err)
		require.False(t, v.ToBoolean())
	})

	t.Run("Interrupt", func(t *testing.T) {
		doc := parse(t, `<svg/>`)
		e := script.New(doc)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := e.RunString(ctx, `for (;;) {}`)
		require.Error(t, err)

		v, err := e.RunString(context.Background(), `1 + 1`)
		require.NoError(t, err, "the runtime is usable after an interrupt")
		require.Equal(t, int64(2), v.ToInteger())
	})
}

func TestRunScripts(t *testing.T) {
	t.Run("ScriptsAndHandlers", func(t *testing.T) {
		const src = `<svg xmlns:ev="http://www.w3.org/2001/xml-events">
<script>var log = [];</script>
<rect id="r">
  <handler type="text/ecmascript" ev:event="click">log.push("click " + evt.type + " " + this.id);</handler>
</rect>
<script type="text/ecmascript">log.push("second");</script>
<script type="text/tcl">this is not run</script>
<script>document.documentElement.addEventListener("SVGLoad", function() { log.push("load"); }, false);</script>
</svg>`
		doc := parse(t, src)
		e := script.New(doc)
		require.NoError(t, e.RunScripts(context.Background()))

		doc.ElementByID("r").DispatchEvent(event.New(event.Click, true))

		v, err := e.RunString(context.Background(), `log.join(",")`)
		require.NoError(t, err)
		require.Equal(t, "second,load,click click r", v.String())
	})

	t.Run("Failure", func(t *testing.T) {
		doc := parse(t, `<svg><script>throw new Error("boom")</script><script>var ok = true;</script></svg>`)
		e := script.New(doc)
		err := e.RunScripts(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "boom")
		require.True(t, e.Runtime().Get("ok").ToBoolean(), "later scripts still run")
	})

	t.Run("ExternalScript", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.js"), []byte(`var fromFile = 42;`), 0o644))
		path := filepath.Join(dir, "doc.svg")
		require.NoError(t, os.WriteFile(path, []byte(`<svg xmlns:xlink="http://www.w3.org/1999/xlink"><script xlink:href="lib.js"/></svg>`), 0o644))

		doc, err := dax.ParseFile(context.Background(), path)
		require.NoError(t, err)
		e := script.New(doc)
		require.NoError(t, e.RunScripts(context.Background()))
		require.Equal(t, int64(42), e.Runtime().Get("fromFile").ToInteger())
	})
}
