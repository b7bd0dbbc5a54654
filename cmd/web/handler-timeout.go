package main

// timeoutBody is served when a handler misses its deadline. It can't depend on templates or the request language.
const timeoutBody = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The request timed out.</p>
<a href="/">Retry</a>
</body>
</html>
`
