package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
	<p>Quotes to scrape</p>
</body>
</html>`

	InteractiveHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="btn">Click Me</button>
	<div id="result"></div>
	<script>
		document.getElementById('btn').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Clicked!';
		});
	</script>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="contact">
		<input id="name" type="text" name="name" />
		<textarea id="message"></textarea>
		<button id="submit" type="submit">Submit</button>
	</form>
</body>
</html>`

	RichUIHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="btn1" aria-label="First Button">Button 1</button>
	<div role="button">Div Button</div>
	<input id="input1" type="text" placeholder="Enter text" />
	<a href="/page1">Link 1</a>
	<a href="/page2">Link 2</a>
	<button style="display:none">Hidden</button>
</body>
</html>`

	LabeledFormHTML = `<!DOCTYPE html>
<html>
<body>
	<form>
		<label for="zip">Postal code</label>
		<input id="zip" type="text" name="zip_code" />
		<input type="email" name="email" placeholder="Your e-mail" />
	</form>
</body>
</html>`
)
