package parabanktest

import "github.com/flosch/pongo2/v6"

const layoutHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ParaBank | {{ title }}</title>
</head>
<body>
<div id="headerPanel"><a href="index.htm">ParaBank</a></div>
<div id="bodyPanel">
`

const layoutFoot = `</div>
</body>
</html>
`

var indexTpl = pongo2.Must(pongo2.FromString(layoutHead + `
<div id="leftPanel" class="leftpanel">
  <h2>Customer Login</h2>
  <form name="login" action="login.htm" method="post">
    <input type="text" class="input" name="username">
    <input type="password" class="input" name="password">
    <input type="submit" class="button" value="Log In">
  </form>
  {% if showRegisterLink %}<p><a href="register.htm">Register</a></p>{% endif %}
</div>
<div id="rightPanel">
  <p class="caption">Experience the difference</p>
</div>
` + layoutFoot))

var registerTpl = pongo2.Must(pongo2.FromString(layoutHead + `
<div id="rightPanel">
  <h1 class="title">Signing up is easy!</h1>
  <p>If you have an account with us you can sign-up for free instant online access. You will have to provide some personal information.</p>
  <form id="customerForm" action="register.htm" method="post">
    <table class="form2">
    {% for f in fields %}
      <tr>
        <td align="right" width="20%"><b>{{ f.Label }}:</b></td>
        <td width="20%"><input id="{{ f.ID }}" name="{{ f.ID }}" class="input" type="{{ f.Type }}" value="{{ f.Value }}"></td>
        <td>{% if f.Error %}<span id="{{ f.ID }}.errors" class="error">{{ f.Error }}</span>{% endif %}</td>
      </tr>
    {% endfor %}
      <tr>
        <td></td>
        <td colspan="2"><input type="submit" class="button" value="Register"></td>
      </tr>
    </table>
  </form>
</div>
` + layoutFoot))

var createdTpl = pongo2.Must(pongo2.FromString(layoutHead + `
<div id="leftPanel" class="leftpanel">
  <p class="smallText"><b>{{ greeting }}</b></p>
  <h2>Account Services</h2>
  <ul>
    <li><a href="openaccount.htm">Open New Account</a></li>
    <li><a href="overview.htm">Accounts Overview</a></li>
    <li><a href="logout.htm">Log Out</a></li>
  </ul>
</div>
<div id="rightPanel">
  <h1 class="title">Welcome {{ username }}</h1>
  <p>Your account was created successfully. You are now logged in.</p>
</div>
` + layoutFoot))
